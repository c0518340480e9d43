package career

import "fmt"

type Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group int    `json:"group"`
	Size  int    `json:"size"`
}

type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// Network is the force-graph view of a recommendation: the primary path in
// the centre, linked to its required skills and the alternative paths.
type Network struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

const (
	primaryNodeID = "primary"

	groupPrimary     = 1
	groupSkill       = 2
	groupAlternative = 3
)

func BuildNetwork(primaryPath string, requiredSkills, alternativePaths []string) Network {
	n := Network{
		Nodes: make([]Node, 0, 1+len(requiredSkills)+len(alternativePaths)),
		Links: make([]Link, 0, len(requiredSkills)+len(alternativePaths)),
	}

	n.Nodes = append(n.Nodes, Node{ID: primaryNodeID, Name: primaryPath, Group: groupPrimary, Size: 20})

	for i, skill := range requiredSkills {
		id := fmt.Sprintf("skill_%d", i)
		n.Nodes = append(n.Nodes, Node{ID: id, Name: skill, Group: groupSkill, Size: 10})
		n.Links = append(n.Links, Link{Source: primaryNodeID, Target: id, Value: 5})
	}

	for i, path := range alternativePaths {
		id := fmt.Sprintf("alt_%d", i)
		n.Nodes = append(n.Nodes, Node{ID: id, Name: path, Group: groupAlternative, Size: 15})
		n.Links = append(n.Links, Link{Source: primaryNodeID, Target: id, Value: 3})
	}

	return n
}
