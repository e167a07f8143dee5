package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/GoCardio/internal/consultation"
	"github.com/Skufu/GoCardio/internal/prediction"
	"github.com/Skufu/GoCardio/internal/session"
)

type predictResponse struct {
	Result  string `json:"result"`
	Present bool   `json:"diseasePresent"`
	Message string `json:"message"`
}

type consultationResponse struct {
	predictResponse
	RecordedAt string `json:"recordedAt"`
}

func newPredictResponse(r prediction.Result) predictResponse {
	return predictResponse{
		Result:  r.String(),
		Present: r == prediction.DiseasePresent,
		Message: r.Message(),
	}
}

func (a *App) apiPredict(c *gin.Context) {
	state := DefaultFormState()
	if !bindJSON(c, &state) {
		return
	}

	result, err := a.predictor.Predict(state.Vector())
	if err != nil {
		a.logger.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction_failed"})
		return
	}
	c.JSON(http.StatusOK, newPredictResponse(result))
}

func (a *App) apiSaveConsultation(c *gin.Context) {
	state := DefaultFormState()
	if !bindJSON(c, &state) {
		return
	}

	vector := state.Vector()
	result, err := a.predictor.Predict(vector)
	if err != nil {
		a.logger.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction_failed"})
		return
	}

	entry, err := a.saver.Save(c.Request.Context(), state.Patient(), vector, result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save_failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, consultationResponse{
		predictResponse: newPredictResponse(result),
		RecordedAt:      entry.RecordAt.Format(consultation.TimeLayout),
	})
}

func (a *App) apiConnect(c *gin.Context) {
	var creds session.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	st := session.Connect(creds)
	if !st.OK {
		c.JSON(http.StatusBadRequest, gin.H{"error": session.MissingMessage, "facility": st.Facility})
		return
	}
	c.JSON(http.StatusOK, st)
}
