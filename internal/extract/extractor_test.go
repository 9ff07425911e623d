package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabsplit/internal/config"
	"tabsplit/internal/domain"
	"tabsplit/internal/extract"
	"tabsplit/internal/llm"
	"tabsplit/internal/port"
)

func newTestExtractor(serverURL string) *extract.Extractor {
	client := llm.NewClient(&config.ModelProviderConfig{
		Endpoint: serverURL,
		Model:    "qwen2.5-vl-72b-instruct",
	})
	return extract.NewExtractor(client)
}

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":    "chatcmpl-test-1",
		"model": "qwen2.5-vl-72b-instruct",
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

const receiptJSON = `{"currency":"USD","total":54.60,"subtotal":45.50,"tax":4.55,"tip":4.55,"items":[{"name":"Pad Thai","price":15.50},{"name":"Green Curry","price":30.00}]}`

func TestExtract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "billing-sig", r.Header.Get("X-Billing-Signature"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "qwen2.5-vl-72b-instruct", reqBody["model"])
		assert.Equal(t, map[string]interface{}{"type": "json_object"}, reqBody["response_format"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])

		user := messages[1].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		blocks := user["content"].([]interface{})
		require.Len(t, blocks, 1)
		imgBlock := blocks[0].(map[string]interface{})
		assert.Equal(t, "image_url", imgBlock["type"])
		imgURL := imgBlock["image_url"].(map[string]interface{})["url"].(string)
		assert.Equal(t, "https://example.com/receipt.jpg", imgURL)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(receiptJSON))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{
		ImageURL: "https://example.com/receipt.jpg",
		Headers:  map[string]string{"X-Billing-Signature": "billing-sig"},
	})

	require.NoError(t, err)
	require.NotNil(t, out.Receipt)
	assert.Equal(t, "USD", *out.Receipt.Currency)
	assert.Equal(t, 54.60, *out.Receipt.Total)
	assert.Len(t, out.Receipt.Items, 2)
	assert.Equal(t, "chatcmpl-test-1", out.ResponseID)
	assert.Equal(t, receiptJSON, out.Content)
}

func TestExtract_Base64GetsDataURIPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		messages := reqBody["messages"].([]interface{})
		user := messages[1].(map[string]interface{})
		blocks := user["content"].([]interface{})
		imgBlock := blocks[0].(map[string]interface{})
		imgURL := imgBlock["image_url"].(map[string]interface{})["url"].(string)
		assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", imgURL)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(receiptJSON))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Base64Image: "aGVsbG8="})
	require.NoError(t, err)
}

func TestExtract_CodeFencedOutputDecodes(t *testing.T) {
	fenced := "```json\n" + receiptJSON + "\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(fenced))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{ImageURL: "https://x/r.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 54.60, *out.Receipt.Total)
}

func TestExtract_NullFieldsAllowed(t *testing.T) {
	content := `{"currency":null,"total":null,"subtotal":null,"tax":null,"tip":null,"items":[]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(content))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{ImageURL: "https://x/r.jpg"})
	require.NoError(t, err)
	assert.Nil(t, out.Receipt.Total)
	assert.Nil(t, out.Receipt.Currency)
	assert.NotNil(t, out.Receipt.Items)
	assert.Empty(t, out.Receipt.Items)
}

func TestExtract_MissingKeyIsExtractionError(t *testing.T) {
	content := `{"currency":"USD","total":10.00,"subtotal":9.00,"tax":1.00,"items":[]}` // no tip
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse(content))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{ImageURL: "https://x/r.jpg"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtraction))
}

func TestExtract_NonJSONOutputIsExtractionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse("I could not read this receipt, sorry."))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{ImageURL: "https://x/r.jpg"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtraction))
}

func TestExtract_ProviderErrorIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"provider overloaded"}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{ImageURL: "https://x/r.jpg"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}

func TestExtract_EmptyChoicesIsExtractionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "x", "choices": []interface{}{}})
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{ImageURL: "https://x/r.jpg"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtraction))
}
