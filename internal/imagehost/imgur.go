package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
)

// Image - метаданные загруженного изображения
type Image struct {
	ID         string `json:"id"`
	Link       string `json:"link"`
	DeleteHash string `json:"deletehash"`
	Datetime   int64  `json:"datetime"`
}

// Imgur - клиент API изображений Imgur v3
type Imgur struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewImgur создает клиент. endpoint - адрес ресурса image, например https://api.imgur.com/3/image
func NewImgur(endpoint, token string, timeout time.Duration) *Imgur {
	return &Imgur{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type uploadResponse struct {
	Data    Image `json:"data"`
	Success bool  `json:"success"`
	Status  int   `json:"status"`
}

// Upload загружает PNG и возвращает ссылку и ключ удаления
func (c *Imgur) Upload(ctx context.Context, png []byte, title string) (*Image, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("image", "plot.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload form: %w", err)
	}
	if _, err := part.Write(png); err != nil {
		return nil, fmt.Errorf("failed to write image to form: %w", err)
	}
	_ = form.WriteField("type", "file")
	_ = form.WriteField("title", title)
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to close upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w: %w", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image host returned status %d: %w", resp.StatusCode, models.ErrUpstream)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w: %w", models.ErrUpstream, err)
	}
	if !decoded.Success || decoded.Data.DeleteHash == "" {
		return nil, fmt.Errorf("image host rejected upload: %w", models.ErrUpstream)
	}
	return &decoded.Data, nil
}

// Delete удаляет изображение по ключу удаления
func (c *Imgur) Delete(ctx context.Context, deleteHash string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint+"/"+deleteHash, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w: %w", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	// Изображение, удаленное ранее, считается освобожденным
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image host returned status %d on delete: %w", resp.StatusCode, models.ErrUpstream)
	}
	return nil
}

func (c *Imgur) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
