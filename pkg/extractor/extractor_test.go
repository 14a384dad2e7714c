package extractor

import (
	"testing"

	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/parser/queries"
	"github.com/gnana997/widgetspec/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	logger := util.Discard()
	pm := parser.NewParserManager(logger)
	qm := queries.NewQueryManager(pm, logger)
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})
	return NewExtractor(pm, qm, logger)
}

// --- ES module output ---

const esmProps = `import _defineProperty from "@babel/runtime/helpers/defineProperty";
import BaseProps from '@wavemaker/app-rn-runtime/core/base.props';
import * as helpers from "./helpers";
import { ButtonDefaults, Icon as WmIcon } from "../icon/icon.props";
import "./side-effect";

export default class WmButtonProps extends BaseProps {
  constructor(...args) {
    super(...args);
    _defineProperty(this, "caption", "Button");
  }
}
`

func TestExtractModule_ESM(t *testing.T) {
	ex := newTestExtractor(t)

	info, err := ex.ExtractModule("/lib/button/button.props.js", []byte(esmProps))
	require.NoError(t, err)
	assert.Equal(t, parser.LanguageJavaScript, info.Language)

	parent, ok := info.ParentClass()
	require.True(t, ok)
	assert.Equal(t, "WmButtonProps", parent.Name)
	assert.Equal(t, "BaseProps", parent.Extends)
	assert.Equal(t, uint32(7), parent.Location.StartLine)
	assert.Equal(t, "/lib/button/button.props.js", parent.Location.FilePath)

	type row struct {
		local, imported, source string
		kind                    ImportType
	}
	var got []row
	for _, b := range info.Imports {
		got = append(got, row{b.LocalName, b.ImportedName, b.Source, b.Type})
	}
	assert.Equal(t, []row{
		{"_defineProperty", "default", "@babel/runtime/helpers/defineProperty", ImportTypeDefault},
		{"BaseProps", "default", "@wavemaker/app-rn-runtime/core/base.props", ImportTypeDefault},
		{"helpers", "*", "./helpers", ImportTypeNamespace},
		{"ButtonDefaults", "ButtonDefaults", "../icon/icon.props", ImportTypeNamed},
		{"WmIcon", "Icon", "../icon/icon.props", ImportTypeNamed},
	}, got)

	b, ok := info.BindingFor("BaseProps")
	require.True(t, ok)
	assert.Equal(t, "@wavemaker/app-rn-runtime/core/base.props", b.Source)
}

// --- CommonJS output ---

const cjsProps = `"use strict";
var _interopRequireDefault = require("@babel/runtime/helpers/interopRequireDefault");
Object.defineProperty(exports, "__esModule", { value: true });
var _defineProperty2 = _interopRequireDefault(require("@babel/runtime/helpers/defineProperty"));
var _base = _interopRequireDefault(require("../base/base.props"));
var { Platform, StyleSheet: Sheet } = require("react-native");
class WmLabelProps extends _base.default {
  constructor(...args) {
    super(...args);
    (0, _defineProperty2.default)(this, "caption", '');
  }
}
exports.default = WmLabelProps;
`

func TestExtractModule_CommonJS(t *testing.T) {
	ex := newTestExtractor(t)

	info, err := ex.ExtractModule("/lib/label/label.props.js", []byte(cjsProps))
	require.NoError(t, err)

	parent, ok := info.ParentClass()
	require.True(t, ok)
	assert.Equal(t, "_base.default", parent.Extends)

	b, ok := info.BindingFor(parent.Extends)
	require.True(t, ok)
	assert.Equal(t, "_base", b.LocalName)
	assert.Equal(t, "../base/base.props", b.Source)
	assert.Equal(t, ImportTypeRequire, b.Type)

	platform, ok := info.BindingFor("Platform")
	require.True(t, ok)
	assert.Equal(t, "react-native", platform.Source)

	sheet, ok := info.BindingFor("Sheet")
	require.True(t, ok)
	assert.Equal(t, "StyleSheet", sheet.ImportedName)

	_, ok = info.BindingFor("exports")
	assert.False(t, ok)
}

// --- TypeScript ---

func TestExtractModule_TypeScript(t *testing.T) {
	ex := newTestExtractor(t)
	src := `import { BaseComponent } from '@wavemaker/app-rn-runtime/core/base.component';
import Legacy = require("./legacy");
export default class WmPanel extends BaseComponent<Props, State> implements Panel {}
`
	info, err := ex.ExtractModule("/lib/panel/panel.component.ts", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, parser.LanguageTypeScript, info.Language)

	parent, ok := info.ParentClass()
	require.True(t, ok)
	assert.Equal(t, "WmPanel", parent.Name)
	assert.Equal(t, "BaseComponent", parent.Extends)

	legacy, ok := info.BindingFor("Legacy")
	require.True(t, ok)
	assert.Equal(t, "./legacy", legacy.Source)
	assert.Equal(t, ImportTypeRequire, legacy.Type)
}

func TestExtractModule_MemberExpressionParent(t *testing.T) {
	ex := newTestExtractor(t)
	src := `import React from 'react';
export class Thing extends React.Component {}
`
	info, err := ex.ExtractModule("/lib/thing.js", []byte(src))
	require.NoError(t, err)

	parent, ok := info.ParentClass()
	require.True(t, ok)
	assert.Equal(t, "React.Component", parent.Extends)

	b, ok := info.BindingFor(parent.Extends)
	require.True(t, ok)
	assert.Equal(t, "react", b.Source)
}

func TestExtractModule_NoParent(t *testing.T) {
	ex := newTestExtractor(t)
	info, err := ex.ExtractModule("/lib/plain.js", []byte(`export default class Plain {}`))
	require.NoError(t, err)

	_, ok := info.ParentClass()
	assert.False(t, ok)
	assert.Empty(t, info.Imports)
}

func TestExtractModule_UnsupportedExtension(t *testing.T) {
	ex := newTestExtractor(t)
	_, err := ex.ExtractModule("/lib/button.css", []byte(`.a {}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

// --- helpers ---

func TestUnquote(t *testing.T) {
	assert.Equal(t, "./a", unquote(`"./a"`))
	assert.Equal(t, "./a", unquote(`'./a'`))
	assert.Equal(t, "./a", unquote("`./a`"))
	assert.Equal(t, `"./a'`, unquote(`"./a'`))
	assert.Equal(t, "x", unquote("x"))
}

func TestLeadingIdentifier(t *testing.T) {
	assert.Equal(t, "_base", leadingIdentifier("_base.default"))
	assert.Equal(t, "mixin", leadingIdentifier("mixin(Base)"))
	assert.Equal(t, "Base", leadingIdentifier("Base"))
}
