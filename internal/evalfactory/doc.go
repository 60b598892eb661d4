// Package evalfactory instantiates named condition/expression evaluators
// from a (class-name, expression) pair, the way the original's
// ExpressionEvaluatorFactory does. Two backends are built in: a
// JavaScript-flavored default built on goja, and an HCL-expression
// alternate for authors who would rather not write JS.
package evalfactory
