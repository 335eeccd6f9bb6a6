package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/planta-despachos/internal/application/analytics"
	"github.com/jhoicas/planta-despachos/internal/application/dto"
	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/internal/application/usecase"
	"github.com/jhoicas/planta-despachos/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/planta-despachos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/planta-despachos/internal/interfaces/http"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := filestore.Open("", logger.Nop())
	require.NoError(t, err)
	repos := store.Repos()
	log := logger.Nop()

	app := apphttp.NewApp("planta-test")
	apphttp.Router(app, apphttp.RouterDeps{
		SiloUC:       usecase.NewSiloUseCase(repos.Silos, repos.Dispatches),
		ClientUC:     usecase.NewClientUseCase(repos.Clients),
		DriverUC:     usecase.NewDriverUseCase(repos.Drivers),
		DispatchUC:   inventory.NewDispatchUseCase(store, repos, log),
		SiloFillUC:   inventory.NewSiloFillUseCase(store, repos, log),
		DeliveryNote: inventory.NewDeliveryNoteUseCase(repos, infrapdf.NewDeliveryNoteGenerator("Planta Test")),
		DashboardUC:  analytics.NewDashboardUseCase(repos),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSilo(t *testing.T, app *fiber.App, stock, capacity int64) dto.SiloResponse {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/silos", dto.CreateSiloRequest{
		Name:         "Silo A",
		Capacity:     decimal.NewFromInt(capacity),
		CurrentStock: decimal.NewFromInt(stock),
		MinStock:     decimal.NewFromInt(20),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.SiloResponse](t, resp)
}

func TestSilos_FillExcedeCapacidad(t *testing.T) {
	app := buildTestApp(t)
	silo := createSilo(t, app, 90, 100)

	resp := do(t, app, http.MethodPost, "/api/silos/"+silo.ID+"/fill", dto.FillSiloRequest{Amount: decimal.NewFromInt(20)})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CAPACITY_EXCEEDED", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/silos/"+silo.ID+"/fill", dto.FillSiloRequest{Amount: decimal.Zero})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_AMOUNT", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/silos/"+silo.ID+"/fill", dto.FillSiloRequest{Amount: decimal.NewFromInt(10)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	filled := decode[dto.FillSiloResponse](t, resp)
	assert.True(t, decimal.NewFromInt(100).Equal(filled.Silo.CurrentStock))

	resp = do(t, app, http.MethodGet, "/api/silos/"+silo.ID+"/inputs", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	inputs := decode[struct {
		Items []dto.CementInputResponse `json:"items"`
	}](t, resp)
	assert.Len(t, inputs.Items, 1)
}

func TestSilos_IDSobreviveAPeticionesPosteriores(t *testing.T) {
	app := buildTestApp(t)
	silo := createSilo(t, app, 10, 100)

	resp := do(t, app, http.MethodPost, "/api/silos/"+silo.ID+"/fill", dto.FillSiloRequest{Amount: decimal.NewFromInt(5)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Otro ID de la misma longitud: reutiliza el buffer de la petición anterior.
	other := strings.Repeat("z", len(silo.ID))
	for i := 0; i < 20; i++ {
		resp = do(t, app, http.MethodPost, "/api/silos/"+other+"/fill", dto.FillSiloRequest{Amount: decimal.NewFromInt(1)})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	resp = do(t, app, http.MethodGet, "/api/silos/"+silo.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(15).Equal(decode[dto.SiloResponse](t, resp).CurrentStock))

	resp = do(t, app, http.MethodGet, "/api/silos/"+silo.ID+"/inputs", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	inputs := decode[struct {
		Items []dto.CementInputResponse `json:"items"`
	}](t, resp)
	require.Len(t, inputs.Items, 1)
	assert.Equal(t, silo.ID, inputs.Items[0].SiloID)
}

func TestDispatches_CicloHTTP(t *testing.T) {
	app := buildTestApp(t)
	silo := createSilo(t, app, 75, 100)

	body := dto.DispatchRequest{
		SiloID:     silo.ID,
		ClientName: "Obra Norte",
		DriverName: "Juan Pérez",
		QuantityM3: decimal.NewFromInt(10),
	}
	resp := do(t, app, http.MethodPost, "/api/dispatches", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.DispatchResponse](t, resp)
	assert.Equal(t, "manual", created.Client.Kind)

	resp = do(t, app, http.MethodGet, "/api/silos/"+silo.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(65).Equal(decode[dto.SiloResponse](t, resp).CurrentStock))

	resp = do(t, app, http.MethodGet, "/api/dispatches?period=all&silo_id="+silo.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.DispatchListResponse](t, resp).Items, 1)

	resp = do(t, app, http.MethodGet, "/api/dispatches/"+created.ID+"/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "guia_DESP-001.pdf")

	resp = do(t, app, http.MethodDelete, "/api/dispatches/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/dispatches/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/silos/"+silo.ID, nil)
	assert.True(t, decimal.NewFromInt(75).Equal(decode[dto.SiloResponse](t, resp).CurrentStock))
}

func TestDispatches_StockInsuficiente(t *testing.T) {
	app := buildTestApp(t)
	silo := createSilo(t, app, 5, 100)

	resp := do(t, app, http.MethodPost, "/api/dispatches", dto.DispatchRequest{
		SiloID:     silo.ID,
		ClientName: "Obra Norte",
		DriverName: "Juan Pérez",
		QuantityM3: decimal.NewFromInt(10),
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSilos_EliminarConDespachosEsConflicto(t *testing.T) {
	app := buildTestApp(t)
	silo := createSilo(t, app, 75, 100)

	resp := do(t, app, http.MethodPost, "/api/dispatches", dto.DispatchRequest{
		SiloID:     silo.ID,
		ClientName: "Obra Norte",
		DriverName: "Juan Pérez",
		QuantityM3: decimal.NewFromInt(5),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/silos/"+silo.ID, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRecursosInexistentes(t *testing.T) {
	app := buildTestApp(t)

	for _, path := range []string{
		"/api/silos/nope",
		"/api/clients/nope",
		"/api/drivers/nope",
		"/api/dispatches/nope",
		"/api/dispatches/nope/pdf",
		"/api/clients/nope/summary",
	} {
		resp := do(t, app, http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
	}
}

func TestClients_CRUDYResumen(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/clients", dto.ClientRequest{Name: "Constructora Andina", Document: "20123456789"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	client := decode[dto.ClientResponse](t, resp)

	resp = do(t, app, http.MethodPost, "/api/clients", dto.ClientRequest{Document: "1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/clients?q=andina", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.ClientListResponse](t, resp).Items, 1)

	resp = do(t, app, http.MethodGet, "/api/clients/"+client.ID+"/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.ClientSummaryDTO](t, resp)
	assert.Equal(t, 0, summary.DispatchCount)

	resp = do(t, app, http.MethodDelete, "/api/clients/"+client.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDashboard_Responde(t *testing.T) {
	app := buildTestApp(t)
	createSilo(t, app, 10, 100)

	resp := do(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardResponse](t, resp)
	assert.Len(t, out.Silos, 1)
	assert.Equal(t, 1, out.LowStockCount)
}
