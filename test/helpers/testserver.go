package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"kidhub_backend/database"
	"kidhub_backend/internal/app"
	"kidhub_backend/internal/config"

	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// TestServer - httptest-сервер поверх изолированной in-memory базы.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer поднимает сервер на собственной sqlite-базе.
// cache=shared держит базу общей для всего пула соединений,
// уникальное имя изолирует параллельные тесты друг от друга.
func NewTestServer(t *testing.T) *TestServer {
	cfg := config.GetConfig()

	dsn := fmt.Sprintf("file:kidhub_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database (%s): %v", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get *sql.DB: %v", err)
	}
	// Одна запись за раз, иначе sqlite отдает "database is locked"
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// SendRequest выполняет запрос к тестовому серверу и возвращает ответ с телом.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}
