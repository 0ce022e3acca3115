/*
Package errors implements the error interfaces shared by all bazaar
extensions.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when a caller needs to tell them apart. Extensions
such as x/marketplace register their own root errors.

Register(code, description) declares a root error. Wrap and Wrapf annotate
a root error at the point of failure; Code(err) and ErrXyz.Is(err) classify
it again on the caller side.

The innermost Wrap attaches a stack trace. Later wraps add text only.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
