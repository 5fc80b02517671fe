package criteria

import (
	"github.com/viant/fluxterm/service/dao"
)

// FilterByState reports whether state satisfies the State parameter, if
// present. Parameters with other names are ignored.
func FilterByState(state string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.StateParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			return state == actual
		case []string:
			if len(actual) == 0 {
				return true
			}
			for _, candidate := range actual {
				if state == candidate {
					return true
				}
			}
			return false
		}
	}
	return true
}
