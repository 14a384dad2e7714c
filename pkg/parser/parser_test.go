package parser

import (
	"sync"
	"testing"

	"github.com/gnana997/widgetspec/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compiledProps = `import _defineProperty from "@babel/runtime/helpers/defineProperty";
import BaseProps from "../base/base.props";
export default class WmButtonProps extends BaseProps {
  constructor(...args) {
    super(...args);
    _defineProperty(this, "caption", "Button");
  }
}
`

const tsProps = `import { BaseProps } from '@wavemaker/app-rn-runtime/core/base.component';
export default class WmLabelProps extends BaseProps {
  caption: string = '';
}
`

const tsxSource = `export const View = () => <div className="x">Hello</div>;`

// --- Language detection ---

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"button.props.js", LanguageJavaScript},
		{"button.props.mjs", LanguageJavaScript},
		{"index.cjs", LanguageJavaScript},
		{"view.jsx", LanguageJavaScript},
		{"label.props.ts", LanguageTypeScript},
		{"LABEL.PROPS.TS", LanguageTypeScript},
		{"view.tsx", LanguageTypeScript},
		{"styles.css", LanguageUnknown},
		{"README", LanguageUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectLanguage(tc.path))
		})
	}
}

func TestIsTSXFile(t *testing.T) {
	assert.True(t, IsTSXFile("a.tsx"))
	assert.False(t, IsTSXFile("a.ts"))
	assert.False(t, IsTSXFile("a.jsx"))
}

func TestParseLanguageString(t *testing.T) {
	assert.Equal(t, LanguageJavaScript, ParseLanguageString("JS"))
	assert.Equal(t, LanguageTypeScript, ParseLanguageString("typescript"))
	assert.Equal(t, LanguageUnknown, ParseLanguageString("go"))
	assert.Equal(t, "unknown", LanguageUnknown.String())
}

// --- Parsing ---

func TestParse_JavaScript(t *testing.T) {
	manager := NewParserManager(util.Discard())
	defer manager.Close()

	tree, err := manager.Parse([]byte(compiledProps), LanguageJavaScript, false)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
	assert.Contains(t, root.ToSexp(), "class_heritage")
}

func TestParse_TypeScript(t *testing.T) {
	manager := NewParserManager(util.Discard())
	defer manager.Close()

	tree, err := manager.Parse([]byte(tsProps), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, "program", tree.RootNode().Kind())
	assert.Contains(t, tree.RootNode().ToSexp(), "extends_clause")
}

func TestParseFile_TSX(t *testing.T) {
	manager := NewParserManager(util.Discard())
	defer manager.Close()

	tree, err := manager.ParseFile([]byte(tsxSource), "view.tsx")
	require.NoError(t, err)
	defer tree.Close()

	assert.Contains(t, tree.RootNode().ToSexp(), "jsx_element")
}

func TestParseFile_Unsupported(t *testing.T) {
	manager := NewParserManager(util.Discard())
	defer manager.Close()

	_, err := manager.ParseFile([]byte("a {}"), "button.css")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestParse_UnknownLanguage(t *testing.T) {
	manager := NewParserManager(util.Discard())
	defer manager.Close()

	_, err := manager.Parse([]byte("x"), LanguageUnknown, false)
	assert.Error(t, err)
}

func TestParse_SyntaxErrorStillReturnsTree(t *testing.T) {
	manager := NewParserManager(util.Discard())
	defer manager.Close()

	tree, err := manager.Parse([]byte("class X extends {"), LanguageJavaScript, false)
	require.NoError(t, err)
	defer tree.Close()
	assert.True(t, tree.RootNode().HasError())
}

// --- Pools ---

func TestParserManager_Stats(t *testing.T) {
	manager := NewParserManagerWithPoolSize(util.Discard(), 2)
	defer manager.Close()

	for i := 0; i < 3; i++ {
		tree, err := manager.Parse([]byte(compiledProps), LanguageJavaScript, false)
		require.NoError(t, err)
		tree.Close()
	}

	stats := manager.GetStats()
	assert.Equal(t, 3, stats.ParsesCalled)
	assert.Equal(t, 2, stats.PoolSize)
	// Sequential parses reuse the same parser.
	assert.Equal(t, 1, stats.ParsersCreated)
}

func TestParserManager_ConcurrentParses(t *testing.T) {
	manager := NewParserManagerWithPoolSize(util.Discard(), 4)
	defer manager.Close()

	const goroutines = 16
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src, lang := []byte(compiledProps), LanguageJavaScript
			if i%2 == 1 {
				src, lang = []byte(tsProps), LanguageTypeScript
			}
			tree, err := manager.Parse(src, lang, false)
			if err != nil {
				errs <- err
				return
			}
			defer tree.Close()
			if tree.RootNode().Kind() != "program" {
				errs <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	stats := manager.GetStats()
	assert.Equal(t, goroutines, stats.ParsesCalled)
	// Never more than PoolSize parsers per grammar.
	assert.LessOrEqual(t, stats.ParsersCreated, 8)
}
