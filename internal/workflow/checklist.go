package workflow

import "encoding/json"

// EditChecklist is the mandatory pre-upload quality gate for edited files.
// Every item must be confirmed before an editor may submit work for review.
type EditChecklist struct {
	WhiteBalance       bool `json:"white_balance"`
	ExposureBlended    bool `json:"exposure_blended"`
	VerticalsCorrected bool `json:"verticals_corrected"`
	WindowPull         bool `json:"window_pull"`
	SkyReplaced        bool `json:"sky_replaced"`
	ObjectsRemoved     bool `json:"objects_removed"`
	ColorConsistency   bool `json:"color_consistency"`
	CroppedToSpec      bool `json:"cropped_to_spec"`
}

func ParseEditChecklist(raw []byte) (EditChecklist, error) {
	var c EditChecklist
	err := json.Unmarshal(raw, &c)
	return c, err
}

func (c EditChecklist) Complete() bool {
	return len(c.Missing()) == 0
}

// Missing returns the JSON names of unchecked items, in declaration order.
func (c EditChecklist) Missing() []string {
	var missing []string
	items := []struct {
		name string
		done bool
	}{
		{"white_balance", c.WhiteBalance},
		{"exposure_blended", c.ExposureBlended},
		{"verticals_corrected", c.VerticalsCorrected},
		{"window_pull", c.WindowPull},
		{"sky_replaced", c.SkyReplaced},
		{"objects_removed", c.ObjectsRemoved},
		{"color_consistency", c.ColorConsistency},
		{"cropped_to_spec", c.CroppedToSpec},
	}
	for _, item := range items {
		if !item.done {
			missing = append(missing, item.name)
		}
	}
	return missing
}
