package ast

// FunctionKinds returns the node kinds that represent functions for a language.
func FunctionKinds(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"function_declaration", "method_declaration", "func_literal"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"function_declaration", "function_expression", "arrow_function", "method_definition", "generator_function_declaration"}
	case LangPython:
		return []string{"function_definition", "lambda"}
	case LangRust:
		return []string{"function_item", "closure_expression"}
	case LangJava:
		return []string{"method_declaration", "constructor_declaration", "lambda_expression"}
	case LangKotlin:
		return []string{"function_declaration", "lambda_literal", "anonymous_function"}
	case LangRuby:
		return []string{"method", "singleton_method", "lambda"}
	default:
		return nil
	}
}

// TypeKinds returns the node kinds that declare classes, structs and similar
// type-like units for a language.
func TypeKinds(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"type_spec"}
	case LangJavaScript:
		return []string{"class_declaration", "class"}
	case LangTypeScript, LangTSX:
		return []string{"class_declaration", "class", "interface_declaration", "abstract_class_declaration"}
	case LangPython:
		return []string{"class_definition"}
	case LangRust:
		return []string{"struct_item", "enum_item", "trait_item", "impl_item"}
	case LangJava:
		return []string{"class_declaration", "interface_declaration", "enum_declaration", "record_declaration"}
	case LangKotlin:
		return []string{"class_declaration", "object_declaration"}
	case LangRuby:
		return []string{"class", "module", "singleton_class"}
	default:
		return nil
	}
}

// IdentifierKinds returns the leaf kinds that carry names.
func IdentifierKinds() []string {
	return []string{
		"identifier",
		"type_identifier",
		"field_identifier",
		"property_identifier",
		"simple_identifier",
		"constant",
		"shorthand_property_identifier_pattern",
	}
}

// IsFunction reports whether kind is a function kind in lang.
func IsFunction(lang Language, kind string) bool {
	return contains(FunctionKinds(lang), kind)
}

// IsType reports whether kind is a type-like kind in lang.
func IsType(lang Language, kind string) bool {
	return contains(TypeKinds(lang), kind)
}

// IsIdentifier reports whether kind names a binding.
func IsIdentifier(kind string) bool {
	return contains(IdentifierKinds(), kind)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
