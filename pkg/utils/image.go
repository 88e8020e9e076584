package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxImageSize 单张图片上限 20MB，防止异常大文件拖垮内存
const maxImageSize = 20 << 20

var imageClient = &http.Client{Timeout: 15 * time.Second}

// DownloadImage 拉取网络图片并返回字节切片
func DownloadImage(url string) ([]byte, error) {
	resp, err := imageClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("http get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body failed: %v", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image too large (> %d bytes)", maxImageSize)
	}

	return data, nil
}
