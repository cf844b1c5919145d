package complexity

import "nodelens/internal/ast"

// decisionKinds returns the node kinds that contribute to cyclomatic complexity.
func decisionKinds(lang ast.Language) []string {
	switch lang {
	case ast.LangGo:
		return []string{
			"if_statement",
			"for_statement",
			"range_clause",
			"expression_case",    // case in switch
			"type_case",          // case in type switch
			"select_statement",   // select with cases
			"communication_case", // case in select
			"binary_expression",  // for && and ||
		}
	case ast.LangJavaScript, ast.LangTypeScript, ast.LangTSX:
		return []string{
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_case",
			"catch_clause",
			"ternary_expression",
			"binary_expression", // for && and ||
			"optional_chain_expression",
		}
	case ast.LangPython:
		return []string{
			"if_statement",
			"elif_clause",
			"for_statement",
			"while_statement",
			"except_clause",
			"with_statement",
			"boolean_operator",         // and, or
			"conditional_expression",   // ternary
			"list_comprehension",       // for clause
			"dictionary_comprehension", // for clause
			"set_comprehension",        // for clause
			"generator_expression",     // for clause
		}
	case ast.LangRust:
		return []string{
			"if_expression",
			"match_expression",
			"match_arm",
			"while_expression",
			"loop_expression",
			"for_expression",
			"binary_expression", // for && and ||
		}
	case ast.LangJava:
		return []string{
			"if_statement",
			"for_statement",
			"enhanced_for_statement",
			"while_statement",
			"do_statement",
			"switch_expression",
			"switch_block_statement_group",
			"catch_clause",
			"ternary_expression",
			"binary_expression", // for && and ||
		}
	case ast.LangKotlin:
		return []string{
			"if_expression",
			"when_expression",
			"when_entry",
			"for_statement",
			"while_statement",
			"do_while_statement",
			"catch_block",
			"binary_expression", // for && and ||
			"elvis_expression",  // ?:
		}
	case ast.LangRuby:
		return []string{
			"if",
			"elsif",
			"unless",
			"while",
			"until",
			"for",
			"when",
			"rescue",
			"conditional", // ternary
			"if_modifier",
			"unless_modifier",
			"while_modifier",
			"until_modifier",
			"binary", // for &&, ||, and, or
		}
	default:
		return nil
	}
}

// nestingKinds returns the node kinds that increase nesting depth.
func nestingKinds(lang ast.Language) []string {
	switch lang {
	case ast.LangGo:
		return []string{
			"if_statement",
			"for_statement",
			"select_statement",
			"type_switch_statement",
			"expression_switch_statement",
			"func_literal", // nested functions
		}
	case ast.LangJavaScript, ast.LangTypeScript, ast.LangTSX:
		return []string{
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_statement",
			"try_statement",
			"arrow_function",
			"function_expression",
		}
	case ast.LangPython:
		return []string{
			"if_statement",
			"for_statement",
			"while_statement",
			"try_statement",
			"with_statement",
			"lambda",
			"list_comprehension",
			"dictionary_comprehension",
			"set_comprehension",
			"generator_expression",
		}
	case ast.LangRust:
		return []string{
			"if_expression",
			"match_expression",
			"while_expression",
			"loop_expression",
			"for_expression",
			"closure_expression",
		}
	case ast.LangJava:
		return []string{
			"if_statement",
			"for_statement",
			"enhanced_for_statement",
			"while_statement",
			"do_statement",
			"switch_expression",
			"try_statement",
			"lambda_expression",
		}
	case ast.LangKotlin:
		return []string{
			"if_expression",
			"when_expression",
			"for_statement",
			"while_statement",
			"do_while_statement",
			"try_expression",
			"lambda_literal",
		}
	case ast.LangRuby:
		return []string{
			"if",
			"unless",
			"while",
			"until",
			"for",
			"case",
			"begin",
			"block",
			"do_block",
			"lambda",
		}
	default:
		return nil
	}
}

// parameterListKinds returns the node kinds holding a function's parameters.
func parameterListKinds(lang ast.Language) []string {
	switch lang {
	case ast.LangGo:
		return []string{"parameter_list"}
	case ast.LangJavaScript, ast.LangTypeScript, ast.LangTSX:
		return []string{"formal_parameters"}
	case ast.LangPython:
		return []string{"parameters", "lambda_parameters"}
	case ast.LangRust:
		return []string{"parameters", "closure_parameters"}
	case ast.LangJava:
		return []string{"formal_parameters"}
	case ast.LangKotlin:
		return []string{"function_value_parameters", "lambda_parameters"}
	case ast.LangRuby:
		return []string{"method_parameters", "lambda_parameters", "block_parameters"}
	default:
		return nil
	}
}

// booleanOperators are the operator tokens counted as decision points.
var booleanOperators = []string{"&&", "||", "and", "or"}

// isBooleanOperator checks if a binary expression node is a short-circuit
// boolean operation.
func isBooleanOperator(n *ast.SyntaxNode) bool {
	for _, c := range n.Children() {
		if c.IsNamed() {
			continue
		}
		if contains(booleanOperators, c.Text()) {
			return true
		}
	}
	return false
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
