package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"catalog_admin_v1/pkg/utils"
)

// ==================== 接口定义 ====================

// StorageProvider 图片托管接口
// 草稿里的 data-URL 图片在提交前要先换成公开可访问的 URL
type StorageProvider interface {
	// Upload 上传文件，返回公开访问 URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点（S3 兼容服务）
	CDNDomain string // CDN 域名（可选）
	BasePath  string // local: 落盘目录
	PublicURL string // local: 对外访问前缀
}

// ==================== 存储服务 ====================

// StorageService 包装 StorageProvider，补充 data-URL / 远程 URL 的转换逻辑
type StorageService struct {
	provider StorageProvider
}

func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	var (
		provider StorageProvider
		err      error
	)
	switch cfg.Provider {
	case "s3":
		provider, err = NewS3Storage(cfg)
	case "local":
		provider, err = NewLocalStorage(cfg)
	default:
		err = fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return &StorageService{provider: provider}, nil
}

// SaveBase64 保存 data-URL 形式的图片，返回托管 URL
// 输入形如 "data:image/png;base64,...."
func (s *StorageService) SaveBase64(ctx context.Context, dataURL string, prefix string) (string, error) {
	mime, payload, ok := splitDataURL(dataURL)
	if !ok {
		return "", fmt.Errorf("不是合法的 data-URL")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("base64 解码失败: %v", err)
	}

	filename := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), extForMime(mime))
	return s.provider.Upload(ctx, raw, filename, mime)
}

// MirrorURL 把外部图片镜像到自己的存储，返回托管 URL
func (s *StorageService) MirrorURL(ctx context.Context, sourceURL string, prefix string) (string, error) {
	data, err := utils.DownloadImage(sourceURL)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	filename := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), extForMime(contentType))
	return s.provider.Upload(ctx, data, filename, contentType)
}

// Delete 删除托管文件
func (s *StorageService) Delete(ctx context.Context, url string) error {
	return s.provider.Delete(ctx, url)
}

// splitDataURL 拆出 data-URL 的 MIME 和 base64 部分
func splitDataURL(dataURL string) (mime, payload string, ok bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	head, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(head, ";base64") {
		return "", "", false
	}
	return strings.TrimSuffix(head, ";base64"), payload, true
}

func extForMime(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("加载 AWS 配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := "uploads/" + filename

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 上传失败: %v", err)
	}

	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	idx := strings.Index(url, "/uploads/")
	if idx < 0 {
		return fmt.Errorf("无法从 URL 解析对象键: %s", url)
	}
	key := url[idx+1:]

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// ==================== 本地实现 ====================

// LocalStorage 本地磁盘实现，开发和单机部署用
type LocalStorage struct {
	basePath  string
	publicURL string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("本地存储需要 BasePath")
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		basePath:  cfg.BasePath,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (l *LocalStorage) Upload(_ context.Context, data []byte, filename string, _ string) (string, error) {
	if err := os.WriteFile(filepath.Join(l.basePath, filename), data, 0o644); err != nil {
		return "", err
	}
	return l.publicURL + "/" + filename, nil
}

func (l *LocalStorage) Delete(_ context.Context, url string) error {
	filename := filepath.Base(url)
	err := os.Remove(filepath.Join(l.basePath, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
