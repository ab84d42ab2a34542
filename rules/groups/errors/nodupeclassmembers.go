package errors

import (
	"fmt"

	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// NoDupeClassMembers flags a class declaring the same member twice: two
// methods named "f", two static getters named "x", and so on silently
// shadow one another at runtime, which is never intentional. Fields
// (CLASS_PROP) are excluded, matching classic no-dupe-class-members
// semantics, and a getter/setter pair of the same name is NOT a
// duplicate (it's the normal way to define an accessor) because the
// dedup key includes the member's kind, which differs between the two.
// Grounded on
// original_source/crates/rslint_core/src/groups/errors/no_dupe_class_members.rs.
type NoDupeClassMembers struct{}

func (NoDupeClassMembers) Name() string  { return "no-dupe-class-members" }
func (NoDupeClassMembers) Group() string { return "errors" }

type memberKey struct {
	static bool
	kind   string
	name   string
}

func (r NoDupeClassMembers) CheckNode(n *cstree.Node, ctx *rules.Context) {
	if n.Kind() != token.CLASS_BODY {
		return
	}
	seen := map[memberKey]*cstree.Node{}
	for _, member := range n.Children() {
		kindStr, ok := memberKindString(member.Kind())
		if !ok {
			continue
		}
		name, computed := cstutil.ClassMemberName(member, ctx.Src)
		if computed {
			continue
		}
		key := memberKey{static: cstutil.IsStaticMember(member), kind: kindStr, name: name}
		if prev, dup := seen[key]; dup {
			d := diagnostic.Errorf("no-dupe-class-members", fmt.Sprintf("duplicate %s %q", kindStr, name))
			d.Primary(ctx.FileID, textedit.Range{Start: member.Offset(), End: member.EndOffset()}, "this member is redeclared")
			d.Secondary(ctx.FileID, textedit.Range{Start: prev.Offset(), End: prev.EndOffset()}, "first declared here")
			ctx.Report(*d)
		}
		seen[key] = member
	}
}

func memberKindString(k token.Kind) (string, bool) {
	switch k {
	case token.METHOD:
		return "method", true
	case token.GETTER:
		return "getter", true
	case token.SETTER:
		return "setter", true
	}
	return "", false
}
