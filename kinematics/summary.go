package kinematics

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// String prints a table of the joints in id order, with their ids, links, type and motion subspace.
func (r *Robot) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s: %d joints, %d positions, %d velocities", r.name, r.NumJoints(), r.NumPos(), r.NumVel()))
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Axis", "Parent", "Child", "BFS ID", "BFS Level", "Index Q", "Index V"})
	for _, j := range r.JointsOrderedByID(false) {
		t.AppendRow(table.Row{
			j.ID(),
			j.Name(),
			string(j.Type()),
			j.Axis(),
			j.Parent(),
			j.Child(),
			j.BFSID(),
			j.BFSLevel(),
			fmt.Sprint(r.JointIndexQ(j.ID())),
			fmt.Sprint(r.JointIndexV(j.ID())),
		})
	}
	return t.Render()
}
