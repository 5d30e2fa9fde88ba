package display

import (
	"encoding/json"
	"fmt"
)

// PrettyPrintJSON prints v as indented JSON.
func PrettyPrintJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(Paint(Red, "cannot format response: "+err.Error()))
		return
	}
	fmt.Println(string(data))
}
