// Package frontend turns source files into syntax trees.
//
// Each language lives in its own subpackage and registers itself from init,
// so importing a subpackage (usually blank) makes its extensions available
// through [ForFile].
package frontend

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/l3aro/go-valueset/pkg/syntax"
)

// ErrUnsupportedExtension is returned for files no registered frontend handles.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// Language identifies a source language.
type Language string

const (
	Java Language = "java"
	Go   Language = "go"
)

// SyntaxError locates a region the parser could not make sense of.
type SyntaxError struct {
	Line   int `json:"line" msgpack:"line"`     // 1-based
	Column int `json:"column" msgpack:"column"` // 1-based
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("%d:%d", e.Line, e.Column)
}

// Unit is the result of translating one source file.
type Unit struct {
	Methods      []*syntax.MethodDeclaration
	SyntaxErrors []SyntaxError
}

// Translator translates source text into method declarations.
// Parsers that recover from errors return the methods they could translate
// together with the error locations in [Unit.SyntaxErrors].
type Translator interface {
	Translate(ctx context.Context, src []byte) (*Unit, error)
}

type registration struct {
	lang    Language
	newFunc func() Translator
}

var (
	mu         sync.RWMutex
	byLanguage = make(map[Language]registration)
	byExt      = make(map[string]registration)
)

// Register makes a translator available for a language and its extensions.
// Extensions include the leading dot and are matched case-insensitively.
func Register(lang Language, newFunc func() Translator, exts ...string) {
	mu.Lock()
	defer mu.Unlock()

	reg := registration{lang: lang, newFunc: newFunc}
	byLanguage[lang] = reg
	for _, ext := range exts {
		byExt[strings.ToLower(ext)] = reg
	}
}

// New returns a translator for lang.
func New(lang Language) (Translator, error) {
	mu.RLock()
	defer mu.RUnlock()

	reg, ok := byLanguage[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s. Supported languages: %s", lang, strings.Join(languages(), ", "))
	}
	return reg.newFunc(), nil
}

// ForFile returns the language and a translator for path, chosen by extension.
func ForFile(path string) (Language, Translator, error) {
	mu.RLock()
	defer mu.RUnlock()

	ext := filepath.Ext(path)
	reg, ok := byExt[strings.ToLower(ext)]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	return reg.lang, reg.newFunc(), nil
}

// LanguageFor returns the language registered for path's extension.
func LanguageFor(path string) (Language, bool) {
	mu.RLock()
	defer mu.RUnlock()

	reg, ok := byExt[strings.ToLower(filepath.Ext(path))]
	return reg.lang, ok
}

// Supported reports whether a frontend is registered for path's extension.
func Supported(path string) bool {
	_, ok := LanguageFor(path)
	return ok
}

// Languages returns the registered languages in ascending order.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()

	return languages()
}

func languages() []string {
	langs := make([]string, 0, len(byLanguage))
	for lang := range byLanguage {
		langs = append(langs, string(lang))
	}
	slices.Sort(langs)
	return langs
}
