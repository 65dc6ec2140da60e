package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dutchcoders/go-clamd"
)

// ErrInfected 表示扫描器在文件中发现了威胁。
var ErrInfected = errors.New("scan: malicious content detected")

// Scanner 在图片进入表单之前检查其内容。
type Scanner interface {
	Scan(ctx context.Context, data []byte) error
}

// Nop accepts every file. Used when no clamd address is configured.
type Nop struct{}

func (Nop) Scan(context.Context, []byte) error { return nil }

// ClamdScanner 通过 clamd 的 INSTREAM 扫描上传内容。
type ClamdScanner struct {
	client *clamd.Clamd
}

// New 根据地址返回扫描器；地址为空时返回 Nop。
func New(addr string) Scanner {
	if addr == "" {
		return Nop{}
	}
	return &ClamdScanner{client: clamd.NewClamd(addr)}
}

// Scan 通过 INSTREAM 扫描整个字节流，发现威胁时返回包装了 ErrInfected 的错误。
func (s *ClamdScanner) Scan(ctx context.Context, data []byte) error {
	abort := make(chan bool)
	defer close(abort)

	results, err := s.client.ScanStream(bytes.NewReader(data), abort)
	if err != nil {
		return fmt.Errorf("clamd scan stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-results:
			if !ok {
				return nil
			}
			switch result.Status {
			case clamd.RES_OK:
			case clamd.RES_FOUND:
				return fmt.Errorf("%w: %s", ErrInfected, result.Description)
			default:
				return fmt.Errorf("clamd returned %s: %s", result.Status, result.Description)
			}
		}
	}
}
