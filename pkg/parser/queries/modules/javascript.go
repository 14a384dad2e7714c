// Package modules holds the tree-sitter queries that expose a module's
// shape: the classes it declares with their heritage, and the bindings it
// pulls in from other modules.
package modules

// JSClassQueries matches every class that extends something.
//
// Captures:
//   - @class.definition - the class node (declaration or expression)
//   - @class.heritage   - its class_heritage node
const JSClassQueries = `
; export default class WmButtonProps extends BaseProps {}
(class_declaration
  (class_heritage) @class.heritage
) @class.definition

; const WmButtonProps = class extends BaseProps {}
(class
  (class_heritage) @class.heritage
) @class.definition
`

// JSImportQueries matches ES import statements and CommonJS require
// bindings as emitted by Babel and TypeScript.
//
// Captures:
//   - @import.statement - a whole import statement, clauses walked in Go
//   - @require.binding  - the declarator's name (identifier or object pattern)
//   - @require.fn       - the called function, expected to be "require"
//   - @require.source   - the module specifier string
const JSImportQueries = `
(import_statement) @import.statement

; var _base = require("./base.props");
(variable_declarator
  name: (_) @require.binding
  value: (call_expression
    function: (identifier) @require.fn
    arguments: (arguments (string) @require.source))
) @require.declarator

; var _base = _interopRequireDefault(require("./base.props"));
(variable_declarator
  name: (_) @require.binding
  value: (call_expression
    arguments: (arguments
      (call_expression
        function: (identifier) @require.fn
        arguments: (arguments (string) @require.source))))
) @require.declarator
`
