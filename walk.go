package mdtree

import "io"

// WalkResult is the result of a walk operation.
type WalkResult int

const (
	// WalkContinue indicates that the walk operation should continue.
	WalkContinue WalkResult = iota
	// WalkReplace indicates that the current element should be replaced
	// with the elements returned by the function.
	WalkReplace
	// WalkSkip indicates that the current element should be skipped and
	// no children should be processed.
	WalkSkip
	// WalkStop indicates that the walk operation should stop immediately.
	WalkStop
)

// Filter applies 'fun' to each descendant of 'elt' whose type matches P. The
// function is not applied to 'elt' itself.
//
// The behavior of the filter depends on the WalkResult returned by 'fun':
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Skips processing of the current element.
//   - WalkReplace: Replaces the current element with the elements returned by 'fun'.
//   - WalkContinue: Continues without replacing the current element.
//
// To remove an element, 'fun' should return an empty slice along with
// WalkReplace.
//
// Filter never modifies 'elt' or its descendants in place: every container
// on the path to a replaced element is copied, and the updated root is
// returned.
//
// Example:
//
//	doc = mdtree.Filter(doc, func(s *mdtree.Strikeout) ([]mdtree.Inline, mdtree.WalkResult) {
//	    return s.Inlines, mdtree.WalkReplace
//	})
func Filter[P any, E Element, R Element](elt E, fun func(P) ([]R, WalkResult)) E {
	elt, _, _ = walkChildren(elt, fun)
	return elt
}

type queryResult struct{}

func (queryResult) element()              {}
func (queryResult) clone() Element        { return queryResult{} }
func (queryResult) write(io.Writer) error { return nil }

// Query applies 'fun' to each descendant of 'elt' whose type matches P,
// without modifying anything. 'fun' controls the traversal with WalkStop,
// WalkSkip and WalkContinue.
//
// Example:
//
//	var headings int
//	mdtree.Query(doc, func(h *mdtree.Heading) mdtree.WalkResult {
//	    headings++
//	    return mdtree.WalkSkip
//	})
func Query[P any, E Element](elt E, fun func(P) WalkResult) {
	walkChildren(elt, func(e P) ([]queryResult, WalkResult) {
		return nil, fun(e)
	})
}

func walkChildren[P any, E Element, R Element](e E, fun func(P) ([]R, WalkResult)) (E, bool, WalkResult) {
	switch e := any(e).(type) {
	case *Doc:
		lst, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &Doc{Blocks: lst}
		}
		return any(e).(E), updated, result

	// Inlines
	case *Emph:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Emph{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Strong:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Strong{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Strikeout:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Strikeout{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Link:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Link{Target: e.Target, Inlines: lst}
		}
		return any(e).(E), updated, result

	// following have no children
	case *Str:
	case *Code:
	case *Image:

	// Blocks
	case *Para:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Para{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Heading:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Heading{Level: e.Level, Inlines: lst}
		}
		return any(e).(E), updated, result
	case *BlockQuote:
		lst, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &BlockQuote{Blocks: lst}
		}
		return any(e).(E), updated, result
	case *List:
		lst, updated, result := walkList(e.Items, fun)
		if updated {
			e = &List{Ordered: e.Ordered, Start: e.Start, Items: lst}
		}
		return any(e).(E), updated, result
	case *ListItem:
		lst, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &ListItem{Checkbox: e.Checkbox, Blocks: lst}
		}
		return any(e).(E), updated, result
	case *Table:
		lst, updated, result := walkList(e.Rows, fun)
		if updated {
			e = &Table{Rows: lst}
		}
		return any(e).(E), updated, result
	case *TableRow:
		lst, updated, result := walkList(e.Cells, fun)
		if updated {
			e = &TableRow{Cells: lst}
		}
		return any(e).(E), updated, result
	case *TableCell:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &TableCell{Header: e.Header, Align: e.Align, Inlines: lst}
		}
		return any(e).(E), updated, result

	// following have no children
	case *CodeBlock:
	case *ThematicBreak:
	}
	return e, false, WalkContinue
}

func walkList[P any, S Element, R Element](source []S, fun func(P) ([]R, WalkResult)) ([]S, bool, WalkResult) {
	var (
		replace                   []R
		result                    WalkResult
		updated                   = false
		update                    bool
		sameInOut, coercibleInOut bool
	)
	if _, ok := any(source).(P); ok { // special case, func handles lists and works down-top
		for i := range source {
			var item S
			item, update, result = walkChildren(source[i], fun)
			if update {
				if !updated {
					updated = true
					source = append([]S(nil), source...)
				}
				source[i] = item
			}
			if result == WalkStop {
				return source, updated, WalkStop
			}
		}
		list := any(source).(P)
		replace, result = fun(list)
		switch result {
		case WalkReplace:
			if r, ok := any(replace).([]S); ok {
				return r, true, WalkContinue
			}
			return source, updated, WalkContinue
		case WalkStop:
			return source, updated, WalkStop
		}
		return source, updated, WalkContinue
	}
	_, sameInOut = any(replace).([]S)
	if !sameInOut {
		var item R
		_, coercibleInOut = any(item).(S)
	}
	for i := 0; i < len(source); {
		if v, ok := any(source[i]).(P); ok {
			replace, result = fun(v)
			switch result {
			case WalkStop:
				return source, updated, WalkStop
			case WalkSkip:
				i++
				continue
			case WalkReplace:
				if sameInOut || coercibleInOut {
					if !updated {
						updated = true
						source = append([]S(nil), source...)
					}
					if len(replace) == 0 {
						source = append(source[:i], source[i+1:]...)
						continue
					} else if len(replace) == 1 {
						source[i] = any(replace[0]).(S)
					} else if sameInOut {
						source = append(source[:i], append(any(replace).([]S), source[i+1:]...)...)
					} else {
						source = append(source[:i], append(make([]S, len(replace)), source[i+1:]...)...)
						for j := range replace {
							source[i+j] = any(replace[j]).(S)
						}
					}
					i += len(replace)
				} else {
					i++
				}
				continue
			case WalkContinue:
			}
		}
		var item S
		item, update, result = walkChildren(source[i], fun)
		if update {
			if !updated {
				updated = true
				source = append([]S(nil), source...)
			}
			source[i] = item
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
		i++
	}
	return source, updated, WalkContinue
}
