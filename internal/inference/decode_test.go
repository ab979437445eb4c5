package inference

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     []byte
		wantErr bool
	}{
		{name: "png", raw: pngBytes(t, 8, 4)},
		{name: "empty", raw: nil, wantErr: true},
		{name: "garbage", raw: []byte("definitely not an image"), wantErr: true},
		{name: "truncated png", raw: pngBytes(t, 8, 4)[:20], wantErr: true},
		{name: "huge declared dimensions", raw: pngHeader(1<<21, 1<<21), wantErr: true},
		{name: "zero width header", raw: pngHeader(0, 16), wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			img, err := Decode(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrDecode) || !IsDecodeError(err) {
					t.Fatalf("expected ErrDecode, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
				t.Fatalf("unexpected bounds %v", b)
			}
		})
	}
}

func TestDecodeLimited_PixelCap(t *testing.T) {
	t.Parallel()

	raw := pngBytes(t, 8, 4)
	if _, err := DecodeLimited(raw, 32); err != nil {
		t.Fatalf("image at the cap must decode: %v", err)
	}
	_, err := DecodeLimited(raw, 31)
	if !errors.Is(err, ErrDecode) || !strings.Contains(err.Error(), "8x4") {
		t.Fatalf("expected ErrDecode naming the size, got %v", err)
	}
}
