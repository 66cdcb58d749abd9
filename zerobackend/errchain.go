package zerobackend

import (
	stderrs "errors"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// errChain is the flattened cause chain of an error, outermost -> root,
// with the operation identifier of each link ("" for plain errors).
type errChain struct {
	messages []string
	ops      []string
}

// newErrChain walks err's cause chain, preferring Station-Manager
// DetailedError.Cause() and falling back to stdlib errors.Unwrap. Depth and
// repeated messages are bounded to guard against cycles.
func newErrChain(err error) errChain {
	const maxDepth = 50
	var c errChain
	seen := map[string]bool{}

	for depth := 0; err != nil && depth < maxDepth; depth++ {
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			c.messages = append(c.messages, dErr.Error())
			c.ops = append(c.ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		c.messages = append(c.messages, msg)
		c.ops = append(c.ops, "")
		err = stderrs.Unwrap(err)
	}
	return c
}

// root is the innermost error message.
func (c errChain) root() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1]
}

// rootOp is the innermost operation identifier, if any.
func (c errChain) rootOp() string {
	if len(c.ops) == 0 {
		return ""
	}
	return c.ops[len(c.ops)-1]
}

func (c errChain) joined() string {
	return strings.Join(c.messages, " -> ")
}
