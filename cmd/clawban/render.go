package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/alekspetrov/clawban/internal/core"
	"github.com/alekspetrov/clawban/internal/poll"
)

// renderEvents prints canonical tick events, one per line.
func renderEvents(w io.Writer, events []core.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case core.WorkItemCreated:
			fmt.Fprintf(w, "%s  #%s %s [%s]\n",
				color.GreenString("created"), e.WorkItem.ID, e.WorkItem.Title, e.WorkItem.Stage.Short())
		case core.WorkItemDeleted:
			fmt.Fprintf(w, "%s  #%s\n", color.RedString("deleted"), e.WorkItemID)
		case core.StageChanged:
			fmt.Fprintf(w, "%s  #%s %s -> %s\n",
				color.YellowString("stage"), e.WorkItemID, e.Old.Short(), e.New.Short())
		case core.WorkItemUpdated:
			fmt.Fprintf(w, "%s  #%s\n", color.CyanString("updated"), e.WorkItemID)
		}
	}
}

// renderPollEvents prints synthesized poll events, one per line.
func renderPollEvents(w io.Writer, events []poll.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case poll.KindCreated:
			fmt.Fprintf(w, "%s  #%s %s\n", color.GreenString("created"), ev.ItemID, ev.Title)
		case poll.KindLabelsChanged:
			fmt.Fprintf(w, "%s  #%s +[%s] -[%s]\n",
				color.YellowString("labels"), ev.ItemID,
				strings.Join(ev.Added, " "), strings.Join(ev.Removed, " "))
		case poll.KindUpdated:
			fmt.Fprintf(w, "%s  #%s\n", color.CyanString("updated"), ev.ItemID)
		}
	}
}
