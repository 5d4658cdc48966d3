// workbook/registry.go
package workbook

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/oops"
)

// Registry는 확장자별 워크북 opener들을 관리하는 중앙 레지스트리입니다.
type Registry struct {
	mu      sync.RWMutex
	openers map[string]OpenFunc
}

// NewRegistry는 새로운 Registry 인스턴스를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{
		openers: make(map[string]OpenFunc),
	}
}

// Register는 확장자에 대한 opener를 등록합니다. 확장자는 대소문자를 구분하지 않습니다.
func (r *Registry) Register(ext string, open OpenFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.openers[normalizeExt(ext)] = open
}

// Lookup은 파일 경로의 확장자에 해당하는 opener를 반환합니다.
func (r *Registry) Lookup(path string) (OpenFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	open, exists := r.openers[normalizeExt(filepath.Ext(path))]
	return open, exists
}

// Supports reports whether a file with this path can be opened.
func (r *Registry) Supports(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Extensions는 등록된 모든 확장자 목록을 정렬하여 반환합니다.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.openers))
	for ext := range r.openers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Open은 확장자에 맞는 opener로 워크북을 엽니다.
func (r *Registry) Open(path string) (Workbook, error) {
	open, ok := r.Lookup(path)
	if !ok {
		return nil, oops.
			In(errdomain.Workbook).
			With("file", path).
			Wrapf(ErrUnsupportedFormat, "extension %q", filepath.Ext(path))
	}
	return open(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// DefaultRegistry는 전역 레지스트리 인스턴스입니다.
var DefaultRegistry = NewRegistry()

// Register는 기본 레지스트리에 opener를 등록합니다.
func Register(ext string, open OpenFunc) {
	DefaultRegistry.Register(ext, open)
}

// Open은 기본 레지스트리를 사용하여 워크북을 엽니다.
func Open(path string) (Workbook, error) {
	return DefaultRegistry.Open(path)
}
