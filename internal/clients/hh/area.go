package hh

type Area struct {
	ID       string
	ParentID string
	Name     string
}

type area struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id"`
	Name     string  `json:"name"`
	Areas    []area  `json:"areas"`
}

func flattenAreas(areas []area) []Area {
	var allAreas []Area

	var collectAreas func(areas []area)
	collectAreas = func(areas []area) {
		for _, a := range areas {
			parentID := ""
			if a.ParentID != nil {
				parentID = *a.ParentID
			}
			allAreas = append(allAreas, Area{ID: a.ID, ParentID: parentID, Name: a.Name})
			collectAreas(a.Areas)
		}
	}
	collectAreas(areas)
	return allAreas
}

type Industry struct {
	ID       string
	ParentID string
	Name     string
}

type industry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Industries []industry `json:"industries"`
}

func flattenIndustries(industries []industry) []Industry {
	var all []Industry
	for _, group := range industries {
		all = append(all, Industry{ID: group.ID, Name: group.Name})
		for _, sub := range group.Industries {
			all = append(all, Industry{ID: sub.ID, ParentID: group.ID, Name: sub.Name})
		}
	}
	return all
}
