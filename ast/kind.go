/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

/*
Kind enumerates the AST node variants. Roughly 40 variants as required
by the data model: one Program root, statements, declarations,
expressions, and the terminal Error node.
*/
type Kind int

const (
	Invalid Kind = iota

	Program
	Block
	Statement
	ExpressionStatement
	StatementModifier

	VariableDeclaration
	Variable

	Subroutine
	Package
	Use
	No

	FunctionCall
	MethodCall
	IndirectCall

	Binary
	Unary
	Assignment

	If
	Elsif
	While
	For
	Foreach
	Return
	Break
	Next
	Last

	Number
	String
	Heredoc
	Regex
	Substitution
	Transliteration

	HashLiteral
	ArrayLiteral
	HashKey
	KeyValue

	Index
	FieldAccess
	Arrow

	Ternary
	Range
	List

	Bareword
	FileTest
	QwList

	Error

	kindSentinel
)

/*
String returns the lower_snake-ish tag name used by the S-expression
renderer and by diagnostics/tests.
*/
func (k Kind) String() string {
	if k <= Invalid || k >= kindSentinel {
		return "Invalid"
	}
	return kindNames[k]
}

var kindNames = map[Kind]string{
	Program:              "Program",
	Block:                "Block",
	Statement:            "Statement",
	ExpressionStatement:  "ExpressionStatement",
	StatementModifier:    "StatementModifier",
	VariableDeclaration:  "VariableDeclaration",
	Variable:             "Variable",
	Subroutine:           "Subroutine",
	Package:              "Package",
	Use:                  "Use",
	No:                   "No",
	FunctionCall:         "FunctionCall",
	MethodCall:           "MethodCall",
	IndirectCall:         "IndirectCall",
	Binary:               "Binary",
	Unary:                "Unary",
	Assignment:           "Assignment",
	If:                   "If",
	Elsif:                "Elsif",
	While:                "While",
	For:                  "For",
	Foreach:              "Foreach",
	Return:               "Return",
	Break:                "Break",
	Next:                 "Next",
	Last:                 "Last",
	Number:               "Number",
	String:               "String",
	Heredoc:              "Heredoc",
	Regex:                "Regex",
	Substitution:         "Substitution",
	Transliteration:      "Transliteration",
	HashLiteral:          "HashLiteral",
	ArrayLiteral:         "ArrayLiteral",
	HashKey:              "HashKey",
	KeyValue:             "KeyValue",
	Index:                "Index",
	FieldAccess:          "FieldAccess",
	Arrow:                "Arrow",
	Ternary:              "Ternary",
	Range:                "Range",
	List:                 "List",
	Bareword:             "Bareword",
	FileTest:             "FileTest",
	QwList:               "QwList",
	Error:                "Error",
}
