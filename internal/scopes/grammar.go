package scopes

import "nodelens/internal/ast"

// Scope kinds.
const (
	KindFile     = "file"
	KindFunction = "function"
	KindMethod   = "method"
	KindClass    = "class"
	KindModule   = "module"
	KindBlock    = "block"
	KindLoop     = "loop"
	KindCase     = "case"
)

// Declaration kinds.
const (
	DeclFunction  = "function"
	DeclMethod    = "method"
	DeclType      = "type"
	DeclClass     = "class"
	DeclModule    = "module"
	DeclVariable  = "variable"
	DeclConstant  = "constant"
	DeclParameter = "parameter"
	DeclField     = "field"
	DeclImport    = "import"
)

type grammar struct {
	// scopes maps node kinds that open a scope to their scope kind.
	scopes map[string]string
	// declarations maps node kinds that bind names to their declaration kind.
	declarations map[string]string
	// parameterLists are node kinds whose identifier children are parameters.
	parameterLists []string
}

func grammarFor(lang ast.Language) grammar {
	switch lang {
	case ast.LangGo:
		return grammar{
			scopes: map[string]string{
				"source_file":          KindFile,
				"function_declaration": KindFunction,
				"method_declaration":   KindMethod,
				"func_literal":         KindFunction,
				"block":                KindBlock,
				"if_statement":         KindBlock,
				"for_statement":        KindLoop,
				"expression_case":      KindCase,
				"type_case":            KindCase,
				"communication_case":   KindCase,
			},
			declarations: map[string]string{
				"function_declaration":           DeclFunction,
				"method_declaration":             DeclMethod,
				"type_spec":                      DeclType,
				"var_spec":                       DeclVariable,
				"const_spec":                     DeclConstant,
				"short_var_declaration":          DeclVariable,
				"range_clause":                   DeclVariable,
				"parameter_declaration":          DeclParameter,
				"variadic_parameter_declaration": DeclParameter,
				"import_spec":                    DeclImport,
			},
		}
	case ast.LangJavaScript, ast.LangTypeScript, ast.LangTSX:
		return grammar{
			scopes: map[string]string{
				"program":                        KindFile,
				"function_declaration":           KindFunction,
				"generator_function_declaration": KindFunction,
				"function_expression":            KindFunction,
				"arrow_function":                 KindFunction,
				"method_definition":              KindMethod,
				"class_declaration":              KindClass,
				"class":                          KindClass,
				"statement_block":                KindBlock,
				"for_statement":                  KindLoop,
				"for_in_statement":               KindLoop,
				"catch_clause":                   KindBlock,
			},
			declarations: map[string]string{
				"function_declaration":           DeclFunction,
				"generator_function_declaration": DeclFunction,
				"class_declaration":              DeclClass,
				"interface_declaration":          DeclType,
				"type_alias_declaration":         DeclType,
				"variable_declarator":            DeclVariable,
				"method_definition":              DeclMethod,
				"required_parameter":             DeclParameter,
				"optional_parameter":             DeclParameter,
			},
			parameterLists: []string{"formal_parameters"},
		}
	case ast.LangPython:
		return grammar{
			scopes: map[string]string{
				"module":              KindFile,
				"function_definition": KindFunction,
				"lambda":              KindFunction,
				"class_definition":    KindClass,
			},
			declarations: map[string]string{
				"function_definition": DeclFunction,
				"class_definition":    DeclClass,
				"assignment":          DeclVariable,
				"typed_parameter":     DeclParameter,
				"default_parameter":   DeclParameter,
			},
			parameterLists: []string{"parameters", "lambda_parameters"},
		}
	case ast.LangRust:
		return grammar{
			scopes: map[string]string{
				"source_file":        KindFile,
				"function_item":      KindFunction,
				"closure_expression": KindFunction,
				"impl_item":          KindClass,
				"trait_item":         KindClass,
				"mod_item":           KindModule,
				"block":              KindBlock,
				"for_expression":     KindLoop,
			},
			declarations: map[string]string{
				"function_item":   DeclFunction,
				"struct_item":     DeclType,
				"enum_item":       DeclType,
				"trait_item":      DeclType,
				"mod_item":        DeclModule,
				"let_declaration": DeclVariable,
				"const_item":      DeclConstant,
				"static_item":     DeclVariable,
				"parameter":       DeclParameter,
			},
			parameterLists: []string{"closure_parameters"},
		}
	case ast.LangJava:
		return grammar{
			scopes: map[string]string{
				"program":                 KindFile,
				"class_declaration":       KindClass,
				"interface_declaration":   KindClass,
				"enum_declaration":        KindClass,
				"record_declaration":      KindClass,
				"method_declaration":      KindMethod,
				"constructor_declaration": KindMethod,
				"lambda_expression":       KindFunction,
				"block":                   KindBlock,
				"for_statement":           KindLoop,
				"enhanced_for_statement":  KindLoop,
				"catch_clause":            KindBlock,
			},
			declarations: map[string]string{
				"class_declaration":          DeclClass,
				"interface_declaration":      DeclType,
				"enum_declaration":           DeclType,
				"record_declaration":         DeclType,
				"method_declaration":         DeclMethod,
				"constructor_declaration":    DeclMethod,
				"field_declaration":          DeclField,
				"local_variable_declaration": DeclVariable,
				"formal_parameter":           DeclParameter,
				"catch_formal_parameter":     DeclParameter,
			},
		}
	case ast.LangKotlin:
		return grammar{
			scopes: map[string]string{
				"source_file":          KindFile,
				"class_declaration":    KindClass,
				"object_declaration":   KindClass,
				"function_declaration": KindFunction,
				"anonymous_function":   KindFunction,
				"lambda_literal":       KindFunction,
				"for_statement":        KindLoop,
			},
			declarations: map[string]string{
				"class_declaration":    DeclClass,
				"object_declaration":   DeclClass,
				"function_declaration": DeclFunction,
				"property_declaration": DeclVariable,
				"parameter":            DeclParameter,
			},
		}
	case ast.LangRuby:
		return grammar{
			scopes: map[string]string{
				"program":          KindFile,
				"class":            KindClass,
				"singleton_class":  KindClass,
				"module":           KindModule,
				"method":           KindMethod,
				"singleton_method": KindMethod,
				"block":            KindBlock,
				"do_block":         KindBlock,
				"lambda":           KindFunction,
			},
			declarations: map[string]string{
				"class":              DeclClass,
				"module":             DeclModule,
				"method":             DeclMethod,
				"singleton_method":   DeclMethod,
				"assignment":         DeclVariable,
				"optional_parameter": DeclParameter,
				"keyword_parameter":  DeclParameter,
			},
			parameterLists: []string{"method_parameters", "block_parameters", "lambda_parameters"},
		}
	default:
		return grammar{}
	}
}

func (g grammar) isParameterList(kind string) bool {
	for _, k := range g.parameterLists {
		if k == kind {
			return true
		}
	}
	return false
}
