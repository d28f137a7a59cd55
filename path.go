package jsonproto

import (
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Path is a compiled include/exclude pattern matched against Pointers.
// Supports a root marker ("$"), dot notation ("$.a.b"), bracket notation
// ("$.a[0]"), a single-level wildcard ("$.a.*"), a recursive wildcard
// ("$.a..b"), and comma-separated unions ("$.a,$.b").
type Path interface {
	String() string
	Matches(p *Pointer) bool
}

// Everything matches every pointer without building or caching anything.
var Everything Path = &everythingPath{}

// Nothing matches no pointer without building or caching anything.
var Nothing Path = &nothingPath{}

type everythingPath struct{}

func (everythingPath) String() string       { return "$.." }
func (everythingPath) Matches(*Pointer) bool { return true }

type nothingPath struct{}

func (nothingPath) String() string        { return "" }
func (nothingPath) Matches(*Pointer) bool { return false }

type compiledPath struct {
	raw string

	buildOnce sync.Once
	isContains bool
	containsStr string
	isPattern  bool
	re         *regexp.Regexp
	buildErr   error

	cacheMu sync.Mutex
	cache   *lru.Cache[*Pointer, bool]
}

var pathInternMu sync.Mutex
var pathIntern map[string]Path

func init() {
	pathIntern = make(map[string]Path)
}

// NewPath compiles (or returns the cached compilation of) a path expression.
func NewPath(expr string) Path {
	if expr == "" {
		return Nothing
	}
	pathInternMu.Lock()
	defer pathInternMu.Unlock()
	if p, ok := pathIntern[expr]; ok {
		return p
	}
	p := &compiledPath{raw: expr}
	pathIntern[expr] = p
	return p
}

// PathFromPointer builds the path that matches exactly the given pointer.
func PathFromPointer(p *Pointer) Path { return NewPath(p.String()) }

// UnionPaths joins multiple path expressions into a single comma-separated
// path. A single already-compiled Path argument is returned unchanged.
func UnionPaths(paths ...Path) Path {
	if len(paths) == 1 {
		return paths[0]
	}
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = p.String()
	}
	return NewPath(strings.Join(parts, ","))
}

func (cp *compiledPath) String() string { return cp.raw }

func (cp *compiledPath) build() {
	cp.buildOnce.Do(func() {
		s := cp.raw
		if strings.HasPrefix(s, "$..") && strings.HasSuffix(s, "..") && len(s) > 5 {
			inner := s[3 : len(s)-2]
			if !strings.ContainsAny(inner, ",*") && !strings.Contains(inner, "..") {
				cp.isContains = true
				cp.containsStr = inner
				return
			}
		}
		if strings.ContainsAny(s, ",*") || strings.Contains(s, "..") {
			cp.isPattern = true
			pattern := strings.ReplaceAll(s, " ", "")
			pattern = strings.ReplaceAll(pattern, "$", `\$`)
			pattern = strings.ReplaceAll(pattern, ",", "|")
			pattern = strings.ReplaceAll(pattern, ".", `\.`)
			pattern = strings.ReplaceAll(pattern, "[", `\[`)
			pattern = strings.ReplaceAll(pattern, "]", `\]`)
			pattern = strings.ReplaceAll(pattern, `\.*`, `\.\w+`)
			pattern = strings.ReplaceAll(pattern, `\.\.`, `.*`)
			pattern = strings.ReplaceAll(pattern, `\[*\]`, `\[\d+\]`)
			re, err := regexp.Compile("^(?:" + pattern + ")$")
			if err != nil {
				cp.buildErr = err
				return
			}
			cp.re = re
		}
	})
}

// Matches reports whether p falls within the path's pattern. Results are
// memoized per compiled path in a bounded LRU cache keyed by pointer
// identity, since pointers are themselves interned.
func (cp *compiledPath) Matches(p *Pointer) bool {
	cp.build()
	if cp.buildErr != nil {
		return false
	}
	cp.cacheMu.Lock()
	if cp.cache == nil {
		c, _ := lru.New[*Pointer, bool](1024)
		cp.cache = c
	}
	if hit, ok := cp.cache.Get(p); ok {
		cp.cacheMu.Unlock()
		return hit
	}
	cp.cacheMu.Unlock()

	s := p.String()
	var result bool
	switch {
	case cp.isContains:
		result = strings.Contains(s, cp.containsStr)
	case cp.isPattern:
		result = cp.re.MatchString(s)
	default:
		result = s == cp.raw
	}

	cp.cacheMu.Lock()
	cp.cache.Add(p, result)
	cp.cacheMu.Unlock()
	return result
}
