// Package pdfinspect классифицирует PDF-чертежи: векторный чертеж из
// КОМПАС пригоден для лазерной резки, растровый скан — нет.
package pdfinspect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
)

// Kind — результат классификации
type Kind string

const (
	KindVector Kind = "vector"
	KindRaster Kind = "raster"
	KindMixed  Kind = "mixed"
	KindEmpty  Kind = "empty"
)

// Порог числа графических операторов, после которого содержимое
// считается полноценным векторным чертежом, а не рамкой вокруг скана
const vectorOpThreshold = 10

// Report — итог проверки одного PDF-файла
type Report struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Pages     int    `json:"pages"`
	VectorOps int    `json:"vector_ops"`
	Images    int    `json:"images"`
	Kind      Kind   `json:"kind"`
}

// IsVector сообщает, пригоден ли файл для резки
func (r *Report) IsVector() bool {
	return r.Kind == KindVector
}

// Inspector разбирает PDF без внешнего рендера: только структура
// файла и содержимое потоков
type Inspector struct {
	logger *zap.Logger
}

func NewInspector(logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{logger: logger}
}

var (
	pagePattern    = regexp.MustCompile(`/Type\s*/Page[^s]`)
	imagePattern   = regexp.MustCompile(`/Subtype\s*/Image`)
	flatePattern   = regexp.MustCompile(`/Filter\s*/FlateDecode`)
	streamPattern  = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)
	// Операторы построения контуров: прямоугольник, перемещение,
	// линия, кривая Безье
	vectorOpPattern = regexp.MustCompile(`(?m)(?:^|[\s])(?:re|m|l|c)(?:[\s]|$)`)
)

// InspectFile читает и классифицирует PDF-файл
func (i *Inspector) InspectFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	rep, err := i.Inspect(data)
	if err != nil {
		return nil, err
	}
	rep.Path = path
	return rep, nil
}

// Inspect классифицирует PDF по его сырому содержимому
func (i *Inspector) Inspect(data []byte) (*Report, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("не PDF-файл")
	}

	rep := &Report{
		SizeBytes: int64(len(data)),
		Pages:     len(pagePattern.FindAll(data, -1)),
		Images:    len(imagePattern.FindAll(data, -1)),
	}

	for _, m := range streamPattern.FindAllSubmatchIndex(data, -1) {
		body := data[m[2]:m[3]]

		// Словарь объекта стоит перед ключевым словом stream
		dictStart := m[0] - 512
		if dictStart < 0 {
			dictStart = 0
		}
		dict := data[dictStart:m[0]]

		if flatePattern.Match(dict) {
			inflated, err := inflate(body)
			if err != nil {
				i.logger.Debug("Поток не распакован", zap.Error(err))
				continue
			}
			body = inflated
		}
		rep.VectorOps += len(vectorOpPattern.FindAll(body, -1))
	}

	rep.Kind = classify(rep)
	return rep, nil
}

func classify(r *Report) Kind {
	switch {
	case r.VectorOps > vectorOpThreshold:
		// Векторность определяется числом операторов; встроенная
		// картинка (логотип, подложка) ее не отменяет
		return KindVector
	case r.Images > 0:
		return KindRaster
	case r.VectorOps > 0:
		// Несколько операторов без картинок — рамка или штамп,
		// полноценной геометрии в файле нет
		return KindMixed
	default:
		return KindEmpty
	}
}

func inflate(body []byte) ([]byte, error) {
	body = bytes.TrimRight(body, "\r\n")
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// InspectDir проверяет все PDF первого уровня в папке
func (i *Inspector) InspectDir(dir string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var reports []Report
	for _, e := range entries {
		if e.IsDir() || !isPDF(e.Name()) {
			continue
		}
		rep, err := i.InspectFile(filepath.Join(dir, e.Name()))
		if err != nil {
			i.logger.Warn("Файл пропущен", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		reports = append(reports, *rep)
	}
	return reports, nil
}

func isPDF(name string) bool {
	return len(name) > 4 && (name[len(name)-4:] == ".pdf" || name[len(name)-4:] == ".PDF")
}
