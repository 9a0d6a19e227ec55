package service

import (
	"Balgil/internal/pkg/consts"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ObjectStorage 由 *minio.Storage 实现
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
	GetPublicURL(objectName string) string
}

// AvatarProcessor 头像裁剪为正方形 JPEG 后上传
type AvatarProcessor struct {
	storage ObjectStorage
	size    int
}

func NewAvatarProcessor(storage ObjectStorage) *AvatarProcessor {
	return &AvatarProcessor{storage: storage, size: consts.AvatarSize}
}

func (p *AvatarProcessor) Enabled() bool {
	return p != nil && p.storage != nil
}

// Store 返回缩略图的公开地址
func (p *AvatarProcessor) Store(ctx context.Context, userID string, r io.Reader, size int64) (string, error) {
	if size > consts.AvatarMaxBytes {
		return "", ErrFileTooLarge
	}
	raw, err := io.ReadAll(io.LimitReader(r, consts.AvatarMaxBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "read avatar")
	}
	if len(raw) > consts.AvatarMaxBytes {
		return "", ErrFileTooLarge
	}

	thumb, err := p.thumbnail(raw)
	if err != nil {
		return "", err
	}

	objectName := consts.AvatarObjectDir + url.PathEscape(userID) + "/" + uuid.NewString() + ".jpg"
	key, err := p.storage.UploadFile(ctx, objectName, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
	if err != nil {
		return "", err
	}
	return p.storage.GetPublicURL(key), nil
}

func (p *AvatarProcessor) thumbnail(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrFileNotSupported, err.Error())
	}

	square := imaging.Fill(img, p.size, p.size, imaging.Center, imaging.Lanczos)
	var buf bytes.Buffer
	if err = imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, errors.Wrap(err, "encode avatar")
	}
	return buf.Bytes(), nil
}

// Release 删除此前上传的头像; 外部链接与 data URL 忽略
func (p *AvatarProcessor) Release(ctx context.Context, publicURL string) {
	if !p.Enabled() || publicURL == "" {
		return
	}
	prefix := p.storage.GetPublicURL("")
	key, ok := strings.CutPrefix(publicURL, prefix)
	if !ok || !strings.HasPrefix(key, consts.AvatarObjectDir) {
		return
	}
	if err := p.storage.DeleteFile(ctx, key); err != nil {
		log.WarnContext(ctx, "failed to delete replaced avatar", "key", key, "err", err)
	}
}
