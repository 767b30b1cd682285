// Package transcribe 语音转文字协作方。
//
// 语音投诉的音频以 base64 形式上传，解码写入临时文件后交给 Transcriber，
// 无论识别成功与否临时文件都会被删除。
package transcribe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marwahavanshika/FYP2025/config"
)

// ErrorPrefix 识别失败时返回给客户端的错误前缀
const ErrorPrefix = "Error in speech recognition: "

var (
	ErrNotConfigured = errors.New("transcription endpoint is not configured")
	ErrEmptyAudio    = errors.New("audio data is empty")
	ErrAudioTooLarge = errors.New("audio data exceeds size limit")
	ErrEmptyText     = errors.New("no speech recognized")
)

// Transcriber 将音频文件识别为文本
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// RecognitionError 识别失败；Error() 以 ErrorPrefix 开头，可直接返回给客户端
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string { return ErrorPrefix + e.Err.Error() }

func (e *RecognitionError) Unwrap() error { return e.Err }

// FromBase64 解码 base64 音频到临时文件并调用 t 识别。
// maxBytes <= 0 表示不限制解码后的大小。返回的错误均为 *RecognitionError。
func FromBase64(ctx context.Context, t Transcriber, data string, maxBytes int64) (string, error) {
	// 兼容 data URL 形式：data:audio/wav;base64,xxxx
	if i := strings.Index(data, ","); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+1:]
	}
	data = strings.TrimSpace(data)
	if data == "" {
		return "", &RecognitionError{Err: ErrEmptyAudio}
	}

	audio, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", &RecognitionError{Err: fmt.Errorf("decode audio: %w", err)}
	}
	if maxBytes > 0 && int64(len(audio)) > maxBytes {
		return "", &RecognitionError{Err: ErrAudioTooLarge}
	}

	path := filepath.Join(os.TempDir(), "voice_"+uuid.NewString()+".wav")
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return "", &RecognitionError{Err: fmt.Errorf("write temp audio: %w", err)}
	}
	defer os.Remove(path)

	text, err := t.Transcribe(ctx, path)
	if err != nil {
		return "", &RecognitionError{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &RecognitionError{Err: ErrEmptyText}
	}
	return text, nil
}

// ────────────────────── HTTP 实现 ──────────────────────

// HTTPTranscriber 以 multipart/form-data 上传音频到识别服务，
// 响应体形如 {"text": "..."}。
type HTTPTranscriber struct {
	endpoint string
	apiKey   string
	language string
	client   *http.Client
}

// NewHTTPTranscriber 创建 HTTPTranscriber
func NewHTTPTranscriber(cfg *config.TranscriptionConfig) *HTTPTranscriber {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTranscriber{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		client:   &http.Client{Timeout: timeout},
	}
}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Transcribe 实现 Transcriber
func (h *HTTPTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	if h.endpoint == "" {
		return "", ErrNotConfigured
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if h.language != "" {
		if err := mw.WriteField("language", h.language); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call transcription service: %w", err)
	}
	defer resp.Body.Close()

	var out transcriptionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode transcription response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("transcription service: %s", out.Error)
		}
		return "", fmt.Errorf("transcription service returned status %d", resp.StatusCode)
	}
	return out.Text, nil
}
