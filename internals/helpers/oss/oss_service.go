package oss

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxPhotoW    = 512
	maxPhotoH    = 512
	webpQuality  = 80
	signedURLTTL = 15 * time.Minute
)

// Service wraps one OSS bucket. Profile photos are converted to WebP and
// stored under a per-tenant prefix; reads go through signed GET URLs.
type Service struct {
	client *alioss.Client
	bucket *alioss.Bucket
	prefix string
}

func NewFromEnv(prefix string) (*Service, error) {
	endpoint := strings.TrimSpace(os.Getenv("OSS_ENDPOINT"))
	keyID := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_ID"))
	keySecret := strings.TrimSpace(os.Getenv("OSS_ACCESS_KEY_SECRET"))
	bucketName := strings.TrimSpace(os.Getenv("OSS_BUCKET"))
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET must be set")
	}

	client, err := alioss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss: client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: bucket: %w", err)
	}
	return &Service{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// ConvertToWebP decodes the uploaded image (EXIF orientation applied),
// downscales it to the photo bounds and re-encodes as lossy WebP.
func ConvertToWebP(file multipart.File) ([]byte, error) {
	src, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	src = downscaleIfNeeded(src, maxPhotoW, maxPhotoH)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// UploadPhotoAsWebP stores the converted photo and returns its object key.
func (s *Service) UploadPhotoAsWebP(ctx context.Context, fh *multipart.FileHeader, dir string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := ConvertToWebP(f)
	if err != nil {
		return "", err
	}
	key := s.key(dir, uuid.NewString()+".webp")
	if err := s.putWithContext(ctx, key, bytes.NewReader(data), "image/webp"); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) putWithContext(ctx context.Context, key string, r io.Reader, contentType string) error {
	done := make(chan error, 1)
	go func() {
		done <- s.bucket.PutObject(key, r,
			alioss.ContentType(contentType),
			alioss.ContentDisposition("inline"),
		)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// SignedURL issues a presigned GET URL for the object key.
func (s *Service) SignedURL(key string) (string, error) {
	return s.bucket.SignURL(key, alioss.HTTPGet, int64(signedURLTTL.Seconds()))
}

func (s *Service) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.bucket.DeleteObject(key)
}

func (s *Service) key(parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	if s.prefix != "" {
		all = append(all, s.prefix)
	}
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			all = append(all, p)
		}
	}
	return strings.Join(all, "/")
}
