package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// Profile 获取个人资料
func (c *Client) Profile(ctx context.Context, sess Session) (*Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var res Profile
	if err := c.doJSON(ctx, &sess, http.MethodGet, "/api/profile", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UploadProfilePicture 上传头像，返回新头像URL
func (c *Client) UploadProfilePicture(ctx context.Context, sess Session, filename string, r io.Reader) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profile_picture", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read picture: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, &sess, http.MethodPost, "/api/profile/upload", &buf, mw.FormDataContentType(), &res); err != nil {
		return "", err
	}
	return res.URL, nil
}
