// Package contextmenu implements a server-side context menu bound to a
// client-side <vaadin-context-menu> widget.
//
// A ContextMenu holds an ordered list of children: MenuItems and arbitrary
// decorative components. Every MenuItem can host a SubMenu with its own
// ordered children, so menus nest to any depth.
//
//	menu := contextmenu.New(contextmenu.WithTarget(target))
//	file := menu.AddItem("File", nil)
//	file.AddItem("Open", func(e *contextmenu.ClickEvent) { open() })
//	file.SubMenu().Add(contextmenu.Separator())
//	file.AddItem("Quit", func(e *contextmenu.ClickEvent) { quit() })
//
// # Rendering
//
// The menu and each item that has a submenu own a container element,
// attached as a virtual child. Containers are created lazily, the first time
// a submenu is requested, and their node id is published to the client as
// the _containerNodeId property before the first response after attachment.
//
// Every mutation of a child list calls ContextMenu.UpdateChildren, which
// moves the child elements into the right containers and, once per response,
// publishes the nested items tree as the menu's items property.
//
// # Click targets
//
// When the client opens the menu it reports the node under the pointer. A
// ClickEvent resolves that node through TargetChild. Targets implementing
// TemplateBinding have no server-side children to resolve against, so
// TargetChild fails with ErrUnsupportedTarget for them.
package contextmenu
