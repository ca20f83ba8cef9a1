package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ProbeImage fetches an image and reports its intrinsic dimensions. Only
// the header portion of the body is needed for decoding, but the fetch is
// buffered anyway so concurrent rules probing the same image share one
// request.
func (c *Client) ProbeImage(ctx context.Context, url string) (width, height int, err error) {
	resp, err := c.Get(ctx, url, nil)
	if err != nil {
		return 0, 0, err
	}
	if resp.StatusCode != 200 {
		return 0, 0, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(resp.Body))
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", url, err)
	}
	return cfg.Width, cfg.Height, nil
}
