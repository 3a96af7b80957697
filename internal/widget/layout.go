package widget

// Layout assigns bounds to every node, starting with the root at r.
func (t *Tree) Layout(r Rect) {
	if t.root == nil {
		return
	}
	layout(t.root, r)
	for _, l := range t.animating {
		l.target = l.clampScroll(l.target)
	}
}

func layout(n Node, r Rect) {
	b := n.base()
	b.bounds = r

	p, ok := n.(*Panel)
	if !ok || len(p.children) == 0 {
		if l, ok := n.(*List); ok {
			l.scroll = l.clampScroll(l.scroll)
		}
		return
	}

	inner := r
	if p.Title != "" {
		inner.Y++
		inner.H--
	}

	total := inner.H
	if p.Axis == Row {
		total = inner.W
	}
	total -= p.Gap * (len(p.children) - 1)

	// Fixed children first, the rest share what is left.
	flex := 0
	for _, c := range p.children {
		size := c.base().prefH
		if p.Axis == Row {
			size = c.base().prefW
		}
		if size > 0 {
			total -= size
		} else {
			flex++
		}
	}
	total = max(0, total)

	share, extra := 0, 0
	if flex > 0 {
		share, extra = total/flex, total%flex
	}

	pos := inner.Y
	if p.Axis == Row {
		pos = inner.X
	}
	for _, c := range p.children {
		size := c.base().prefH
		if p.Axis == Row {
			size = c.base().prefW
		}
		if size <= 0 {
			size = share
			if extra > 0 {
				size++
				extra--
			}
		}

		cr := Rect{X: inner.X, Y: pos, W: inner.W, H: size}
		if p.Axis == Row {
			cr = Rect{X: pos, Y: inner.Y, W: size, H: inner.H}
		}
		layout(c, cr)
		pos += size + p.Gap
	}
}
