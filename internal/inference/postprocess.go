package inference

import (
	"fmt"
	"sort"
)

var anchorStrides = []int{8, 16, 32}

// anchorCount is the number of candidate boxes a YOLOv8-style head emits
// for a square input of the given size.
func anchorCount(size int) int {
	n := 0
	for _, s := range anchorStrides {
		n += (size / s) * (size / s)
	}
	return n
}

type decodeParams struct {
	inputSize     int
	numClasses    int
	confThreshold float32
	iouThreshold  float32
	maxDetections int
}

// decodeOutput reads a [4+numClasses, anchors] row-major head output
// (cx, cy, w, h in input pixels followed by per-class scores), keeps the
// best class per anchor above the threshold, rescales to the original
// image size and applies per-class NMS.
func decodeOutput(out []float32, p decodeParams, origW, origH int) ([]RawDetection, error) {
	anchors := anchorCount(p.inputSize)
	rows := 4 + p.numClasses
	if len(out) != rows*anchors {
		return nil, fmt.Errorf("unexpected output length: got %d, want %d", len(out), rows*anchors)
	}

	sx := float32(origW) / float32(p.inputSize)
	sy := float32(origH) / float32(p.inputSize)

	cands := make([]RawDetection, 0, 64)
	for i := 0; i < anchors; i++ {
		best, bestScore := -1, float32(0)
		for c := 0; c < p.numClasses; c++ {
			if s := out[(4+c)*anchors+i]; s > bestScore {
				best, bestScore = c, s
			}
		}
		if best < 0 || bestScore < p.confThreshold {
			continue
		}
		cx, cy := out[i], out[anchors+i]
		w, h := out[2*anchors+i], out[3*anchors+i]
		cands = append(cands, RawDetection{
			ClassID: best,
			Score:   bestScore,
			Box: [4]float32{
				clamp32((cx-w/2)*sx, 0, float32(origW)),
				clamp32((cy-h/2)*sy, 0, float32(origH)),
				clamp32((cx+w/2)*sx, 0, float32(origW)),
				clamp32((cy+h/2)*sy, 0, float32(origH)),
			},
		})
	}
	return nms(cands, p.iouThreshold, p.maxDetections), nil
}

// nms keeps the highest-scoring box of each overlapping same-class group.
func nms(dets []RawDetection, iouThreshold float32, limit int) []RawDetection {
	sort.SliceStable(dets, func(i, j int) bool { return dets[i].Score > dets[j].Score })

	kept := make([]RawDetection, 0, len(dets))
	suppressed := make([]bool, len(dets))
	for i := range dets {
		if suppressed[i] {
			continue
		}
		kept = append(kept, dets[i])
		if limit > 0 && len(kept) == limit {
			break
		}
		for j := i + 1; j < len(dets); j++ {
			if !suppressed[j] && dets[j].ClassID == dets[i].ClassID && iou(dets[i].Box, dets[j].Box) > iouThreshold {
				suppressed[j] = true
			}
		}
	}
	return kept
}

func iou(a, b [4]float32) float32 {
	ix1, iy1 := max32(a[0], b[0]), max32(a[1], b[1])
	ix2, iy2 := min32(a[2], b[2]), min32(a[3], b[3])
	if ix2 <= ix1 || iy2 <= iy1 {
		return 0
	}
	inter := (ix2 - ix1) * (iy2 - iy1)
	union := (a[2]-a[0])*(a[3]-a[1]) + (b[2]-b[0])*(b[3]-b[1]) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func clamp32(v, lo, hi float32) float32 {
	return max32(lo, min32(hi, v))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
