package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonStylesESM = `import { defineStyles } from '../../core/base.component';
export const DEFAULT_CLASS = 'app-button';
export default (themeVariables, addStyle) => {
  const defaultStyles = defineStyles({
    root: { padding: 4, borderRadius: 2 },
    'text': { color: 'red', fontFamily: "a, b" },
    icon: {
      root: { width: 10 },
      text: {}
    },
    // trailing comment
    badge: {}
  });
  addStyle(DEFAULT_CLASS, '', defaultStyles);
  addStyle(DEFAULT_CLASS + '-rtl', '', {});
  addStyle('app-button-icon', '', {});
  addStyle(` + "`${DEFAULT_CLASS}-primary`" + `, '', {});
};
`

const buttonStylesCJS = `"use strict";
Object.defineProperty(exports, "__esModule", { value: true });
const DEFAULT_CLASS = exports.DEFAULT_CLASS = 'app-label';
var _default = (themeVariables, addStyle) => {
  const defaultStyles = (0, _baseComponent.defineStyles)({
    root: {},
    text: {}
  });
  addStyle("app-label-danger", '', {});
};
`

// --- style file ---

func TestParseStyleFile_ESM(t *testing.T) {
	desc := NewStyleDescription()
	parseStyleFile(buttonStylesESM, desc)

	assert.Equal(t, "app-button", desc.DefaultClassName)
	assert.Equal(t, []string{"badge", "icon", "root", "text"}, desc.Parts.Sorted())
	assert.Equal(t, []string{
		"app-button",
		"app-button-icon",
		"app-button-primary",
		"app-button-rtl",
	}, desc.Classes.Sorted())
	assert.Empty(t, desc.ClassToPartMapping)
}

func TestParseStyleFile_CommonJS(t *testing.T) {
	desc := NewStyleDescription()
	parseStyleFile(buttonStylesCJS, desc)

	assert.Equal(t, "app-label", desc.DefaultClassName)
	assert.Equal(t, []string{"root", "text"}, desc.Parts.Sorted())
	assert.Equal(t, []string{"app-label", "app-label-danger"}, desc.Classes.Sorted())
}

func TestParseStyleFile_NothingRecognized(t *testing.T) {
	desc := NewStyleDescription()
	parseStyleFile("export default {};", desc)

	assert.Empty(t, desc.DefaultClassName)
	assert.Empty(t, desc.Parts)
	assert.Empty(t, desc.Classes)
}

func TestParseStyleFile_ConcatWithoutDefaultClass(t *testing.T) {
	desc := NewStyleDescription()
	parseStyleFile(`addStyle(DEFAULT_CLASS + '-x', '', {});`, desc)
	assert.Empty(t, desc.Classes)
}

func TestTopLevelKeys(t *testing.T) {
	text := `{ a: 1, "b": [1, 2], c() { return { d: 1 }; }, e, f: g(h, i) }`
	assert.Equal(t, []string{"a", "b", "c", "e", "f"}, topLevelKeys(text, 0))
}

func TestTopLevelKeys_Unterminated(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, topLevelKeys(`{ a: {}, b: 2`, 0))
}

// --- style definition file ---

func TestParseStyleDef(t *testing.T) {
	text := `export default () => [{
    className: '.app-button',
    rnStyleSelector: 'app-button.root'
  }, {
    'className': ".app-button-icon",
    "rnStyleSelector": "app-button.icon"
  }, {
    rnStyleSelector: 'app-button.badge.text',
    className: '.app-button-badge'
  }, {
    className: '.app-button-broken'
  }];`

	desc := NewStyleDescription()
	parseStyleDef(text, desc)

	assert.Equal(t, map[string]string{
		"app-button":       "root",
		"app-button-icon":  "icon",
		"app-button-badge": "text",
	}, desc.ClassToPartMapping)
	assert.Equal(t, []string{"app-button", "app-button-badge", "app-button-icon"}, desc.Classes.Sorted())
	assert.Empty(t, desc.Parts)
}

func TestParseStyleDef_SelectorWithoutDots(t *testing.T) {
	desc := NewStyleDescription()
	parseStyleDef(`{ className: 'app-x', rnStyleSelector: 'root' }`, desc)
	assert.Equal(t, "root", desc.ClassToPartMapping["app-x"])
}

// --- merge ---

func TestMergeStyles(t *testing.T) {
	parent := NewStyleDescription()
	parent.DefaultClassName = "app-base"
	parent.Parts.Add("root", "label")
	parent.Classes.Add("app-base", "shared")
	parent.ClassToPartMapping["shared"] = "label"
	parent.ClassToPartMapping["app-base"] = "root"

	child := NewStyleDescription()
	child.Parts.Add("icon")
	child.Classes.Add("app-child")
	child.ClassToPartMapping["shared"] = "icon"

	merged := mergeStyles(child, parent)
	require.NotNil(t, merged)

	assert.Equal(t, "app-base", merged.DefaultClassName)
	assert.Equal(t, []string{"icon", "label", "root"}, merged.Parts.Sorted())
	assert.Equal(t, []string{"app-base", "app-child", "shared"}, merged.Classes.Sorted())
	assert.Equal(t, map[string]string{"shared": "icon", "app-base": "root"}, merged.ClassToPartMapping)

	// Inputs are left untouched.
	assert.Equal(t, "label", parent.ClassToPartMapping["shared"])
	assert.Len(t, child.Parts, 1)

	child.DefaultClassName = "app-child"
	assert.Equal(t, "app-child", mergeStyles(child, parent).DefaultClassName)
}

func TestMergeStyles_Nil(t *testing.T) {
	assert.Nil(t, mergeStyles(nil, nil))

	only := NewStyleDescription()
	only.Parts.Add("root")
	assert.Equal(t, []string{"root"}, mergeStyles(nil, only).Parts.Sorted())
	assert.Equal(t, []string{"root"}, mergeStyles(only, nil).Parts.Sorted())
}
