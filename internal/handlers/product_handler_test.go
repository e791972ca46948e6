package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func guessResponse(t *testing.T, app *fiber.App, path string) (int, map[string]string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil), -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleGuessNumber(t *testing.T) {
	h := &ProductHandler{drawNumber: func() int { return 7 }}
	app := fiber.New()
	app.Post("/products/guess-number/:num", h.HandleGuessNumber)

	t.Run("correct guess", func(t *testing.T) {
		status, body := guessResponse(t, app, "/products/guess-number/7")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Correct guess", body["message"])
	})

	t.Run("wrong guess reveals the drawn number", func(t *testing.T) {
		status, body := guessResponse(t, app, "/products/guess-number/3")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "7")
	})

	t.Run("non-numeric guess", func(t *testing.T) {
		status, body := guessResponse(t, app, "/products/guess-number/abc")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Guess must be a number", body["message"])
	})
}
