/*
Package expr evaluates the condition language used by flow graphs.

# Overview

Two condition styles appear in a flow: equation transitions carry
structured (variable, operator, value) clauses, and logic-split nodes
carry free-text condition strings. expr serves both: Compare handles a
single structured clause, Eval parses and evaluates a condition string.

# Condition Strings

	<expr> := <comparison>
	        | <expr> 'and' <expr>
	        | <expr> 'or' <expr>
	        | 'not' <expr> | '!' <expr>
	        | <value>

	<comparison> := <value> <op> <value>
	<op> := '==' | '!=' | '<' | '>' | '<=' | '>='
	<value> := 'string' | "string" | number | true | false | null | identifier

Equality operators compare string renderings; ordering operators
compare numerically after coercion. A bare value evaluates to its
truthiness. Unquoted identifiers resolve against the variable map and
fall back to their literal text.

# Usage

	ok, err := expr.Eval(`age > 18 and country == "DE"`, map[string]any{
	    "age":     21,
	    "country": "DE",
	})
*/
package expr
