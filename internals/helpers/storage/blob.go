package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"axflo_backend/internals/configs"
)

// Upload directories, relative to the media root.
const (
	DirNews          = "news"
	DirResumes       = "resumes"
	DirAchievements  = "achievements"
	DirPortfolio     = "portfolio"
	DirPortfolioPre  = "portfolio/before"
	DirPortfolioPost = "portfolio/after"
	DirMilestones    = "milestones"
	DirProjects      = "projects"
	DirServices      = "services"

	tmpDir = "tmp"
)

const maxUploadSize = int64(10 * 1024 * 1024)

// BlobService stores uploaded files. Paths are relative to the media root
// and are what gets persisted on the row.
type BlobService interface {
	Save(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	SaveImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, relPath string) error
	PublicURL(relPath string) string
}

type LocalBlobService struct {
	Root    string
	BaseURL string
	WebP    WebPOptions
}

func NewLocalBlobService(root, baseURL string) *LocalBlobService {
	return &LocalBlobService{
		Root:    root,
		BaseURL: strings.TrimRight(baseURL, "/"),
		WebP:    DefaultWebPOptionsFromEnv(),
	}
}

// NewFromConfig uses MEDIA_ROOT / MEDIA_URL.
func NewFromConfig() *LocalBlobService {
	return NewLocalBlobService(configs.Cfg.MediaRoot, configs.Cfg.MediaURL)
}

var reUnsafeName = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	safe := reUnsafeName.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		safe = "file"
	}
	if len(safe) > 80 {
		ext := filepath.Ext(safe)
		safe = safe[:80-len(ext)] + ext
	}
	return safe
}

func uniqueName(original string) string {
	return fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102"),
		uuid.New().String()[:8],
		sanitizeFilename(original),
	)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Size > maxUploadSize {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "File is too large")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(io.LimitReader(src, maxUploadSize+1))
}

// Save stores the file as-is under dir.
func (s *LocalBlobService) Save(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	data, err := readUpload(fh)
	if err != nil {
		return "", err
	}
	rel := path.Join(dir, uniqueName(fh.Filename))
	if err := s.write(rel, data); err != nil {
		return "", err
	}
	return rel, nil
}

// SaveImage re-encodes the picture to WebP before storing it.
func (s *LocalBlobService) SaveImage(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	data, err := readUpload(fh)
	if err != nil {
		return "", err
	}
	out, err := ConvertToWebP(data, fh.Filename, s.WebP)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg/png/gif/webp)")
		}
		return "", fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded image")
	}
	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	rel := path.Join(dir, uniqueName(base+".webp"))
	if err := s.write(rel, out); err != nil {
		return "", err
	}
	return rel, nil
}

// write goes through tmp/ and renames into place so readers never see a
// partial file. Leftovers in tmp/ are removed by SweepTmp.
func (s *LocalBlobService) write(rel string, data []byte) error {
	dst, err := s.abs(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmpRoot := filepath.Join(s.Root, tmpDir)
	if err := os.MkdirAll(tmpRoot, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(tmpRoot, "upload-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Delete is best-effort; a missing file is not an error.
func (s *LocalBlobService) Delete(ctx context.Context, rel string) error {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return nil
	}
	p, err := s.abs(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalBlobService) PublicURL(rel string) string {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return s.BaseURL + "/" + strings.TrimLeft(rel, "/")
}

// abs resolves rel inside Root and refuses anything escaping it.
func (s *LocalBlobService) abs(rel string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	if clean == "/" {
		return "", fmt.Errorf("invalid media path %q", rel)
	}
	return filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// DeleteQuietly logs instead of returning the error.
func DeleteQuietly(ctx context.Context, svc BlobService, rel string) {
	if svc == nil || strings.TrimSpace(rel) == "" {
		return
	}
	if err := svc.Delete(ctx, rel); err != nil {
		configs.Log().Warn("media delete failed", zap.String("path", rel), zap.Error(err))
	}
}

// URLOrNil is used by JSON payloads that expect null for "no file".
func URLOrNil(svc BlobService, rel string) interface{} {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	return svc.PublicURL(rel)
}
