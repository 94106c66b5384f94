package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptoledger/src/api"
	"cryptoledger/src/config"
	"cryptoledger/src/repositories"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{Service: config.ServiceConfig{
		Port:           "0",
		RequestTimeout: 5 * time.Second,
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: []string{"http://localhost:3000"},
	}}
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ts := httptest.NewServer(api.NewServer(cfg, repositories.NewInMemoryTransactionRepository(), logger))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return res, decoded
}

func uploadCSV(t *testing.T, url, filename, content string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	res, err := http.Post(url, writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res, decoded
}

func buy(pair string, amount, price, fees float64) map[string]interface{} {
	return map[string]interface{}{
		"date": "2024-06-01", "pair": pair, "amount": amount,
		"price": price, "type": "buy", "fees": fees,
	}
}

func TestAlive(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Im alive!", string(body))
}

func TestTransactionsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	res, _ := doJSON(t, http.MethodGet, ts.URL+"/transactions", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := doJSON(t, http.MethodPost, ts.URL+"/transactions", buy("BTC-USD", 1, 100, 1))
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Transaction added successfully", body["message"])

	res, body = doJSON(t, http.MethodPut, ts.URL+"/transactions/1", buy("ETH-USD", 2, 10, 0))
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Transaction updated successfully", body["message"])

	res, body = doJSON(t, http.MethodPut, ts.URL+"/transactions/77", buy("ETH-USD", 2, 10, 0))
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Transaction not found", body["error"])

	res, _ = doJSON(t, http.MethodPut, ts.URL+"/transactions/abc", buy("ETH-USD", 2, 10, 0))
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/transactions", nil)
	require.NoError(t, err)
	listRes, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&list))
	listRes.Body.Close()
	require.Len(t, list, 1)
	assert.Equal(t, "ETH-USD", list[0]["pair"])
	assert.Equal(t, float64(1), list[0]["id"])

	res, body = doJSON(t, http.MethodDelete, ts.URL+"/transactions/1", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Transaction deleted successfully", body["message"])

	res, _ = doJSON(t, http.MethodDelete, ts.URL+"/transactions/1", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCreateTransactionValidation(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing numeric field", func(t *testing.T) {
		payload := buy("BTC-USD", 1, 100, 1)
		delete(payload, "fees")
		res, _ := doJSON(t, http.MethodPost, ts.URL+"/transactions", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})

	t.Run("zero values are allowed", func(t *testing.T) {
		res, _ := doJSON(t, http.MethodPost, ts.URL+"/transactions", buy("BTC-USD", 0, 0, 0))
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		res, err := http.Post(ts.URL+"/transactions", "application/json", bytes.NewBufferString("{"))
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestBalancesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	res, body := doJSON(t, http.MethodGet, ts.URL+"/balances", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, body)

	doJSON(t, http.MethodPost, ts.URL+"/transactions", buy("BTC-USD", 1, 100, 1))
	sell := buy("BTC-USD", 1, 100, 1)
	sell["type"] = "sell"
	doJSON(t, http.MethodPost, ts.URL+"/transactions", sell)
	transfer := buy("ETH-USD", 5, 0, 0)
	transfer["type"] = "transfer"
	doJSON(t, http.MethodPost, ts.URL+"/transactions", transfer)

	res, body = doJSON(t, http.MethodGet, ts.URL+"/api/balances", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]interface{}{"BTC": float64(0), "USD": float64(-2), "ETH": float64(5)}, body)

	doJSON(t, http.MethodPost, ts.URL+"/transactions", buy("BTCUSD", 1, 1, 0))
	res, body = doJSON(t, http.MethodGet, ts.URL+"/balances", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body["error"], "transaction 4")
}

func TestImportCSVEndpoint(t *testing.T) {
	ts := newTestServer(t)
	header := "date,pair,amount,price,type,fees\n"

	res, body := uploadCSV(t, ts.URL+"/import-csv", "trades.csv",
		header+"2024-01-01,BTC-USD,1,100,buy,1\n2024-01-02,ETH-USD,3,0,transfer,0\n")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Successfully imported 2 transactions", body["message"])

	res, body = uploadCSV(t, ts.URL+"/import-csv", "trades.txt", header)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Only CSV files are allowed", body["error"])

	res, body = uploadCSV(t, ts.URL+"/import-csv", "trades.csv",
		header+"2024-01-01,BTC-USD,1,100,buy,1\n2024-01-02,BTC-USD,1,100,buy,1\n2024-01-03,BTC-USD,x,100,buy,1\n")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body["error"], "Invalid CSV format")
	assert.Contains(t, body["error"], "row 3")

	var list []map[string]interface{}
	listRes, err := http.Get(ts.URL + "/transactions")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&list))
	listRes.Body.Close()
	assert.Len(t, list, 2)
}

func TestImportCSVRejectsNonFiniteNumbers(t *testing.T) {
	ts := newTestServer(t)

	res, body := uploadCSV(t, ts.URL+"/import-csv", "trades.csv",
		"date,pair,amount,price,type,fees\n2024-01-01,BTC-USD,NaN,100,buy,1\n2024-01-02,BTC-USD,1,inf,buy,1\n")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body["error"], "Invalid CSV format")

	listRes, err := http.Get(ts.URL + "/transactions")
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&list))
	listRes.Body.Close()
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Empty(t, list)

	res, _ = doJSON(t, http.MethodGet, ts.URL+"/balances", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestImportCSVRequiresFile(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Post(ts.URL+"/import-csv", "text/csv", bytes.NewBufferString("date,pair\n"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestExportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	doJSON(t, http.MethodPost, ts.URL+"/transactions", buy("BTC-USD", 2, 50, 0))

	res, err := http.Get(ts.URL + "/transactions/export")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "attachment; filename=transactions.xlsx", res.Header.Get("Content-Disposition"))

	f, err := excelize.OpenReader(res.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Balances")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Currency", "Balance"}, {"BTC", "2"}, {"USD", "-100"}}, rows)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/transactions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))
}
