package modules

// TSClassQueries extends JSClassQueries with abstract classes.
const TSClassQueries = JSClassQueries + `
(abstract_class_declaration
  (class_heritage) @class.heritage
) @class.definition
`

// TSImportQueries is JSImportQueries; import_require_clause forms
// (import x = require("y")) surface as import statements and are handled
// while walking them.
const TSImportQueries = JSImportQueries
