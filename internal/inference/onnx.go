package inference

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	inputName  = "images"
	outputName = "output0"

	DefaultInputSize     = 640
	DefaultConfThreshold = 0.25
	DefaultIOUThreshold  = 0.7
	DefaultMaxDetections = 300
)

// DefaultClasses is the class table of the face-mask detector.
var DefaultClasses = []string{"with_mask", "without_mask", "mask_weared_incorrect"}

// ONNXConfig describes the model file and the detection head.
type ONNXConfig struct {
	ModelPath      string
	LibraryPath    string // onnxruntime shared library; empty uses the loader default
	InputSize      int
	Classes        []string
	ConfThreshold  float32
	IOUThreshold   float32
	MaxDetections  int
	Sessions       int
	AcquireTimeout time.Duration
	ChannelOrder   string
}

func (c *ONNXConfig) applyDefaults() error {
	if c.ModelPath == "" {
		return errors.New("model path is required")
	}
	if c.InputSize == 0 {
		c.InputSize = DefaultInputSize
	}
	if c.InputSize%32 != 0 {
		return fmt.Errorf("input size %d is not a multiple of 32", c.InputSize)
	}
	if len(c.Classes) == 0 {
		c.Classes = DefaultClasses
	}
	if c.ConfThreshold <= 0 {
		c.ConfThreshold = DefaultConfThreshold
	}
	if c.IOUThreshold <= 0 {
		c.IOUThreshold = DefaultIOUThreshold
	}
	if c.MaxDetections <= 0 {
		c.MaxDetections = DefaultMaxDetections
	}
	switch c.ChannelOrder {
	case "":
		c.ChannelOrder = ChannelOrderRGB
	case ChannelOrderRGB, ChannelOrderBGR:
	default:
		return fmt.Errorf("unknown channel order %q", c.ChannelOrder)
	}
	return nil
}

// ONNXModel runs a YOLOv8-style detector exported to ONNX.
type ONNXModel struct {
	cfg  ONNXConfig
	pool *sessionPool
}

var _ Model = (*ONNXModel)(nil)

var (
	envOnce sync.Once
	envErr  error
)

// NewONNXModel initializes the onnxruntime environment (once per process)
// and loads cfg.Sessions copies of the model.
func NewONNXModel(cfg ONNXConfig) (*ONNXModel, error) {
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	envOnce.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		envErr = ort.InitializeEnvironment()
	})
	if envErr != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", envErr)
	}
	return newONNXModel(cfg, func() (session, error) { return newORTSession(cfg) })
}

func newONNXModel(cfg ONNXConfig, factory func() (session, error)) (*ONNXModel, error) {
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	pool, err := newSessionPool(cfg.Sessions, cfg.AcquireTimeout, factory)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", cfg.ModelPath, err)
	}
	return &ONNXModel{cfg: cfg, pool: pool}, nil
}

func (m *ONNXModel) Classes() []string { return m.cfg.Classes }

func (m *ONNXModel) Name() string { return filepath.Base(m.cfg.ModelPath) }

// Stats reports session pool usage.
func (m *ONNXModel) Stats() PoolStats { return m.pool.Stats() }

func (m *ONNXModel) Predict(ctx context.Context, img image.Image) ([]RawDetection, error) {
	s, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	defer m.pool.Release(s)

	fillInput(img, m.cfg.InputSize, m.cfg.ChannelOrder, s.Input())
	if err := s.Run(); err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}

	b := img.Bounds()
	return decodeOutput(s.Output(), decodeParams{
		inputSize:     m.cfg.InputSize,
		numClasses:    len(m.cfg.Classes),
		confThreshold: m.cfg.ConfThreshold,
		iouThreshold:  m.cfg.IOUThreshold,
		maxDetections: m.cfg.MaxDetections,
	}, b.Dx(), b.Dy())
}

// Close releases every session. The shared onnxruntime environment stays
// up until DestroyEnvironment.
func (m *ONNXModel) Close() {
	m.pool.Destroy()
}

// DestroyEnvironment tears down onnxruntime; call once at process exit.
func DestroyEnvironment() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

type ortSession struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

func newORTSession(cfg ONNXConfig) (*ortSession, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer options.Destroy()

	threads := runtime.NumCPU()
	if cfg.Sessions > 1 {
		threads = max(1, threads/cfg.Sessions)
	}
	if err := options.SetIntraOpNumThreads(threads); err != nil {
		return nil, fmt.Errorf("set intra-op threads: %w", err)
	}

	size := int64(cfg.InputSize)
	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, size, size))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+len(cfg.Classes)), int64(anchorCount(cfg.InputSize))))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	s, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		options,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &ortSession{session: s, input: input, output: output}, nil
}

func (s *ortSession) Input() []float32  { return s.input.GetData() }
func (s *ortSession) Output() []float32 { return s.output.GetData() }
func (s *ortSession) Run() error        { return s.session.Run() }

func (s *ortSession) Destroy() {
	_ = s.session.Destroy()
	_ = s.input.Destroy()
	_ = s.output.Destroy()
}
