package inference

import (
	"context"
	"fmt"
	"image"
	"math"

	"mask_monitor"
)

// RawDetection is one model output before label resolution.
// Box is x1, y1, x2, y2 in pixels of the image passed to Predict.
type RawDetection struct {
	ClassID int
	Score   float32
	Box     [4]float32
}

// Model is the opaque detector. Classes is the class-name table that
// resolves RawDetection.ClassID.
type Model interface {
	Predict(ctx context.Context, img image.Image) ([]RawDetection, error)
	Classes() []string
	Name() string
}

// Adapter turns upload bytes into labeled detections.
type Adapter struct {
	model     Model
	maxPixels int64
}

// AdapterOption customises an Adapter.
type AdapterOption func(*Adapter)

// WithMaxImagePixels caps width*height of accepted uploads.
func WithMaxImagePixels(n int64) AdapterOption {
	return func(a *Adapter) {
		if n > 0 {
			a.maxPixels = n
		}
	}
}

func NewAdapter(m Model, opts ...AdapterOption) *Adapter {
	a := &Adapter{model: m, maxPixels: DefaultMaxImagePixels}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ModelName identifies the loaded model (file base name for ONNX models).
func (a *Adapter) ModelName() string { return a.model.Name() }

// Infer decodes raw and runs the model. Decode failures wrap ErrDecode;
// everything else is an *Error. No retries.
func (a *Adapter) Infer(ctx context.Context, raw []byte) ([]mask_monitor.Detection, error) {
	img, err := DecodeLimited(raw, a.maxPixels)
	if err != nil {
		return nil, err
	}

	preds, err := a.model.Predict(ctx, img)
	if err != nil {
		return nil, &Error{Op: "predict", Err: err}
	}

	classes := a.model.Classes()
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	out := make([]mask_monitor.Detection, 0, len(preds))
	for _, p := range preds {
		if p.ClassID < 0 || p.ClassID >= len(classes) {
			return nil, &Error{Op: "map", Err: fmt.Errorf("class index %d outside table of %d", p.ClassID, len(classes))}
		}
		out = append(out, mask_monitor.Detection{
			Label:      classes[p.ClassID],
			Confidence: round2(clamp(float64(p.Score), 0, 1)),
			BBox:       normalizeBox(p.Box, w, h),
		})
	}
	return out, nil
}

// normalizeBox orders corners, clamps them into the image and rounds to 2 decimals.
func normalizeBox(box [4]float32, w, h float64) [4]float64 {
	x1, y1, x2, y2 := float64(box[0]), float64(box[1]), float64(box[2]), float64(box[3])
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return [4]float64{
		round2(clamp(x1, 0, w)),
		round2(clamp(y1, 0, h)),
		round2(clamp(x2, 0, w)),
		round2(clamp(y2, 0, h)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
