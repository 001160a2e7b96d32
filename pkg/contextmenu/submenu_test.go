package contextmenu

import (
	"errors"
	"iter"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/vango-go/contextmenu/pkg/dom"
)

func collect(seq iter.Seq[Component]) []Component {
	var out []Component
	for c := range seq {
		out = append(out, c)
	}
	return out
}

func sameOrder(t *testing.T, got []Component, want ...Component) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func newTestSubMenu() (*ContextMenu, *SubMenu) {
	menu := New()
	parent := menu.AddItem("parent", nil)
	return menu, parent.SubMenu()
}

func TestSubMenuIndexedInsertAndRemove(t *testing.T) {
	_, sub := newTestSubMenu()
	a := sub.AddItem("A", nil)
	b := Label("B")
	c := sub.AddItem("C", nil)
	if err := sub.AddComponentAtIndex(1, b); err != nil {
		t.Fatalf("AddComponentAtIndex() error = %v", err)
	}
	sameOrder(t, collect(sub.Children()), a, b, c)

	x := Label("X")
	if err := sub.AddComponentAtIndex(1, x); err != nil {
		t.Fatalf("AddComponentAtIndex() error = %v", err)
	}
	sameOrder(t, collect(sub.Children()), a, x, b, c)

	if err := sub.Remove(b); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	sameOrder(t, collect(sub.Children()), a, x, c)

	items := sub.Items()
	if len(items) != 2 || items[0] != a || items[1] != c {
		t.Errorf("Items() = %v, want [A C]", items)
	}
}

func TestSubMenuAdd(t *testing.T) {
	t.Run("appends in order", func(t *testing.T) {
		_, sub := newTestSubMenu()
		a, b := Label("a"), Separator()
		if err := sub.Add(a, b); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		sameOrder(t, collect(sub.Children()), a, b)
	})

	t.Run("nil component", func(t *testing.T) {
		_, sub := newTestSubMenu()
		err := sub.Add(Label("a"), nil)
		if !errors.Is(err, ErrNilComponent) {
			t.Errorf("Add(nil) error = %v, want ErrNilComponent", err)
		}
		if sub.Len() != 0 {
			t.Errorf("Len() = %d, want 0", sub.Len())
		}
	})

	t.Run("typed nil component", func(t *testing.T) {
		_, sub := newTestSubMenu()
		var item *MenuItem
		if err := sub.Add(item); !errors.Is(err, ErrNilComponent) {
			t.Errorf("Add(typed nil) error = %v, want ErrNilComponent", err)
		}
	})
}

func TestSubMenuRemove(t *testing.T) {
	t.Run("not a child", func(t *testing.T) {
		_, sub := newTestSubMenu()
		sub.AddItem("a", nil)
		err := sub.Remove(Label("stranger"))
		if !errors.Is(err, ErrNotChild) {
			t.Errorf("Remove() error = %v, want ErrNotChild", err)
		}
		if sub.Len() != 1 {
			t.Errorf("Len() = %d, want 1", sub.Len())
		}
	})

	t.Run("failed multi remove changes nothing", func(t *testing.T) {
		_, sub := newTestSubMenu()
		a := sub.AddItem("a", nil)
		b := sub.AddItem("b", nil)
		if err := sub.Remove(a, Label("stranger")); !errors.Is(err, ErrNotChild) {
			t.Fatalf("Remove() error = %v, want ErrNotChild", err)
		}
		sameOrder(t, collect(sub.Children()), a, b)
	})

	t.Run("same component twice", func(t *testing.T) {
		_, sub := newTestSubMenu()
		a := sub.AddItem("a", nil)
		if err := sub.Remove(a, a); !errors.Is(err, ErrNotChild) {
			t.Errorf("Remove(a, a) error = %v, want ErrNotChild", err)
		}
		if sub.Len() != 1 {
			t.Errorf("Len() = %d, want 1", sub.Len())
		}
	})

	t.Run("nil component", func(t *testing.T) {
		_, sub := newTestSubMenu()
		if err := sub.Remove(nil); !errors.Is(err, ErrNilComponent) {
			t.Errorf("Remove(nil) error = %v, want ErrNilComponent", err)
		}
	})
}

func TestSubMenuRemoveAll(t *testing.T) {
	menu, sub := newTestSubMenu()
	s := dom.NewSurface()
	s.Root().AppendChild(menu.Element())
	s.Flush()

	sub.RemoveAll()
	if got := collect(sub.Children()); len(got) != 0 {
		t.Errorf("Children() = %v, want empty", got)
	}
	if s.PendingResponses() != 1 {
		t.Errorf("PendingResponses() = %d, want 1 after RemoveAll on empty submenu", s.PendingResponses())
	}

	sub.AddItem("a", nil)
	sub.Add(Label("b"))
	s.Flush()
	sub.RemoveAll()
	if sub.Len() != 0 {
		t.Errorf("Len() = %d, want 0", sub.Len())
	}
	if n := sub.parent.container.ChildCount(); n != 0 {
		t.Errorf("container children = %d, want 0", n)
	}
}

func TestSubMenuAddComponentAtIndex(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr error
	}{
		{"front", 0, nil},
		{"middle", 1, nil},
		{"end", 2, nil},
		{"negative", -1, ErrNegativeIndex},
		{"past end", 3, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sub := newTestSubMenu()
			sub.AddItem("a", nil)
			sub.AddItem("b", nil)
			x := Label("x")

			err := sub.AddComponentAtIndex(tt.index, x)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddComponentAtIndex(%d) error = %v, want %v", tt.index, err, tt.wantErr)
			}
			children := collect(sub.Children())
			if tt.wantErr != nil {
				if len(children) != 2 {
					t.Errorf("len = %d, want 2 after failed insert", len(children))
				}
				return
			}
			if children[tt.index] != x {
				t.Errorf("child %d = %v, want x", tt.index, children[tt.index])
			}
		})
	}

	t.Run("nil component", func(t *testing.T) {
		_, sub := newTestSubMenu()
		if err := sub.AddComponentAtIndex(0, nil); !errors.Is(err, ErrNilComponent) {
			t.Errorf("error = %v, want ErrNilComponent", err)
		}
	})
}

func TestSubMenuChildrenSnapshot(t *testing.T) {
	_, sub := newTestSubMenu()
	a := sub.AddItem("a", nil)
	seq := sub.Children()
	sub.AddItem("b", nil)

	sameOrder(t, collect(seq), a)
}

func TestSubMenuParent(t *testing.T) {
	menu := New()
	parent := menu.AddItem("parent", nil)
	sub := parent.SubMenu()
	if sub.ParentMenuItem() != parent {
		t.Error("ParentMenuItem() should return the owning item")
	}
	child := sub.AddItem("child", nil)
	if child.Menu() != menu {
		t.Error("nested item should belong to the root menu")
	}
}

func TestSubMenuContainerOrder(t *testing.T) {
	_, sub := newTestSubMenu()
	a := sub.AddItem("a", nil)
	c := sub.AddItem("c", nil)
	b := Label("b")
	if err := sub.AddComponentAtIndex(1, b); err != nil {
		t.Fatal(err)
	}

	got := sub.parent.container.Children()
	want := []*dom.Element{a.Element(), b.Element(), c.Element()}
	if !slices.Equal(got, want) {
		t.Errorf("container children = %v, want a b c", got)
	}

	if err := sub.Remove(a); err != nil {
		t.Fatal(err)
	}
	if a.Element().Parent() != nil {
		t.Error("removed item should be released from the container")
	}
}

func TestSubMenuAddComponentItem(t *testing.T) {
	_, sub := newTestSubMenu()
	h := Heading(5, "First")
	clicked := false
	item, err := sub.AddComponentItem(h, func(*ClickEvent) { clicked = true })
	if err != nil {
		t.Fatalf("AddComponentItem() error = %v", err)
	}
	if h.Element().Parent() != item.Element() {
		t.Error("component should be placed inside the item")
	}
	item.Click()
	if !clicked {
		t.Error("click listener should run")
	}

	if _, err := sub.AddComponentItem(nil, nil); !errors.Is(err, ErrNilComponent) {
		t.Errorf("AddComponentItem(nil) error = %v, want ErrNilComponent", err)
	}
}

func TestChildListRejectsCycles(t *testing.T) {
	menu := New()
	a := menu.AddItem("a", nil)
	b := a.AddItem("b", nil)
	sub := b.SubMenu()

	tests := []struct {
		name string
		add  func() error
		len  func() int
	}{
		{"ancestor item in submenu", func() error { return sub.Add(a) }, sub.Len},
		{"own item in own submenu", func() error { return sub.Add(b) }, sub.Len},
		{"ancestor at index", func() error { return sub.AddComponentAtIndex(0, a) }, sub.Len},
		{"menu in itself", func() error { return menu.Add(menu) }, func() int { return len(menu.Items()) }},
		{"menu as item content", func() error { return b.Add(menu) }, b.Element().ChildCount},
		{"parent as item content", func() error { return b.Add(a) }, b.Element().ChildCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.len()
			if err := tt.add(); !errors.Is(err, dom.ErrCycle) {
				t.Errorf("error = %v, want dom.ErrCycle", err)
			}
			if got := tt.len(); got != before {
				t.Errorf("length = %d, want %d", got, before)
			}
		})
	}

	if b.Element().Parent() != a.container {
		t.Error("b should stay in a's container")
	}
}

func TestChildListRejectsOtherListMembers(t *testing.T) {
	menu := New()
	a := menu.AddItem("a", nil)
	label := Label("shared")
	if err := menu.Add(label); err != nil {
		t.Fatal(err)
	}

	if err := a.SubMenu().Add(label); !errors.Is(err, ErrInOtherList) {
		t.Errorf("Add() error = %v, want ErrInOtherList", err)
	}
	if err := a.SubMenu().AddComponentAtIndex(0, label); !errors.Is(err, ErrInOtherList) {
		t.Errorf("AddComponentAtIndex() error = %v, want ErrInOtherList", err)
	}
	if _, err := a.AddComponentItem(label, nil); !errors.Is(err, ErrInOtherList) {
		t.Errorf("AddComponentItem() error = %v, want ErrInOtherList", err)
	}
	if a.SubMenu().Len() != 0 {
		t.Errorf("Len() = %d, want 0", a.SubMenu().Len())
	}

	if err := menu.Remove(label); err != nil {
		t.Fatal(err)
	}
	if err := a.SubMenu().Add(label); err != nil {
		t.Fatalf("Add() after Remove() error = %v", err)
	}
	if label.Element().Parent() != a.container {
		t.Error("label should live in a's container")
	}
	tree := menu.ItemTree()
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Errorf("ItemTree() = %+v, want label under a only", tree)
	}
}

func TestChildListDetachedSubMenuSyncs(t *testing.T) {
	menu := New()
	a := menu.AddItem("a", nil)
	if err := menu.Remove(a); err != nil {
		t.Fatal(err)
	}
	label := Label("x")
	if err := a.SubMenu().Add(label); err != nil {
		t.Fatal(err)
	}
	if label.Element().Parent() != a.container {
		t.Error("submenu of a removed item should still fill its container")
	}
}

func TestChildListSequences(t *testing.T) {
	for seed := range uint64(20) {
		_, sub := newTestSubMenu()
		r := rand.New(rand.NewPCG(seed, 7))
		pool := make([]Component, 6)
		for i := range pool {
			pool[i] = Label("c")
		}
		var model []Component

		for step := range 40 {
			c := pool[r.IntN(len(pool))]
			switch r.IntN(3) {
			case 0:
				if err := sub.Add(c); err != nil {
					t.Fatalf("seed %d step %d: Add() error = %v", seed, step, err)
				}
				model = append(model, c)
			case 1:
				i := slices.Index(model, c)
				err := sub.Remove(c)
				if i < 0 {
					if !errors.Is(err, ErrNotChild) {
						t.Fatalf("seed %d step %d: Remove() error = %v, want ErrNotChild", seed, step, err)
					}
					break
				}
				if err != nil {
					t.Fatalf("seed %d step %d: Remove() error = %v", seed, step, err)
				}
				model = slices.Delete(model, i, i+1)
			case 2:
				index := r.IntN(len(model) + 1)
				if err := sub.AddComponentAtIndex(index, c); err != nil {
					t.Fatalf("seed %d step %d: AddComponentAtIndex(%d) error = %v", seed, step, index, err)
				}
				model = slices.Insert(model, index, c)
			}

			if got := collect(sub.Children()); !slices.Equal(got, model) {
				t.Fatalf("seed %d step %d: Children() = %v, want %v", seed, step, got, model)
			}
		}

		var want []*dom.Element
		for _, c := range model {
			if !slices.Contains(want, c.Element()) {
				want = append(want, c.Element())
			}
		}
		if got := sub.parent.container.Children(); !slices.Equal(got, want) {
			t.Errorf("seed %d: container children = %v, want first occurrences of %v", seed, got, want)
		}
	}
}
