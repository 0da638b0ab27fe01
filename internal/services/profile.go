package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dormhub/internal/models"
	"dormhub/pkg/config"
	apperrors "dormhub/pkg/errors"
	"dormhub/pkg/logger"

	"github.com/google/uuid"
)

const profilePictureDir = "profile_pictures"

// 允许的头像格式
var allowedPictureTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ProfileService 个人资料与头像存储
type ProfileService struct {
	users   *UserService
	storage config.StorageConfig
}

// Profile 个人资料视图
type Profile struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	ProfilePicture *string `json:"profile_picture"`
}

func NewProfileService(users *UserService, storage config.StorageConfig) *ProfileService {
	return &ProfileService{users: users, storage: storage}
}

// GetProfile 获取个人资料，头像返回完整URL
func (s *ProfileService) GetProfile(user *models.User) *Profile {
	p := &Profile{
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
	if user.ProfilePicture != nil && *user.ProfilePicture != "" {
		u := s.URL(*user.ProfilePicture)
		p.ProfilePicture = &u
	}
	return p
}

// URL 存储相对路径转为对外URL
func (s *ProfileService) URL(rel string) string {
	return s.storage.PublicURL + "/" + rel
}

// UploadPicture 保存新头像并删除旧文件，返回新头像URL
func (s *ProfileService) UploadPicture(user *models.User, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperrors.NewValidationError("profile_picture", "The profile picture field is required.")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	wantType, ok := allowedPictureTypes[ext]
	if !ok {
		return "", apperrors.NewValidationError("profile_picture", "The profile picture field must be a file of type: jpeg, png, jpg.")
	}
	maxBytes := s.storage.UploadMaxKB * 1024
	if fh.Size > maxBytes {
		return "", apperrors.NewValidationError("profile_picture",
			fmt.Sprintf("The profile picture field must not be greater than %d kilobytes.", s.storage.UploadMaxKB))
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", apperrors.NewValidationError("profile_picture",
			fmt.Sprintf("The profile picture field must not be greater than %d kilobytes.", s.storage.UploadMaxKB))
	}
	if http.DetectContentType(data) != wantType {
		return "", apperrors.NewValidationError("profile_picture", "The profile picture field must be an image.")
	}

	rel := path.Join(profilePictureDir, uuid.NewString()+ext)
	if err := s.write(rel, data); err != nil {
		return "", err
	}

	old := ""
	if user.ProfilePicture != nil {
		old = *user.ProfilePicture
	}

	if err := s.users.SetProfilePicture(user, rel); err != nil {
		_ = s.remove(rel)
		return "", err
	}

	// 新路径落库后再删除旧头像，失败只记录日志
	if old != "" {
		if err := s.remove(old); err != nil {
			logger.GetLogger().WithError(err).WithField("path", old).Warn("Failed to delete old profile picture")
		}
	}

	return s.URL(rel), nil
}

func (s *ProfileService) write(rel string, data []byte) error {
	full := filepath.Join(s.storage.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

func (s *ProfileService) remove(rel string) error {
	clean := path.Clean("/" + rel)[1:]
	if clean == "" || !strings.HasPrefix(clean, profilePictureDir+"/") {
		return fmt.Errorf("refusing to delete %q", rel)
	}
	err := os.Remove(filepath.Join(s.storage.Dir, filepath.FromSlash(clean)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
