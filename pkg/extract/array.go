package extract

// wrapperKeys are the conventional but non-standardized keys APIs nest their
// real payload under. Checked in order before any blind scan.
var wrapperKeys = []string{"data", "users", "items", "results", "rows", "list"}

// Array finds the one array that matters in v. Returns (nil, false) when no
// array exists.
//
// An array is itself. An object is probed through the wrapper keys in order,
// then every value is scanned in sorted key order for the first array.
func Array(v any) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, true
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	for _, k := range wrapperKeys {
		if arr, isArr := obj[k].([]any); isArr {
			return arr, true
		}
	}

	for _, k := range sortedKeys(obj) {
		if arr, isArr := obj[k].([]any); isArr {
			return arr, true
		}
	}
	return nil, false
}

// Rows is Array with object rows only: non-object elements are dropped, and a
// keyed object map ({"id1": {...}, "id2": {...}}) is flattened into rows with
// the key injected as "id". This mirrors how feed endpoints sometimes return
// maps instead of lists.
func Rows(v any) ([]map[string]any, bool) {
	arr, ok := Array(v)
	if !ok {
		if obj, isObj := v.(map[string]any); isObj && len(obj) > 0 {
			allObjects := true
			for _, inner := range obj {
				if _, isMap := inner.(map[string]any); !isMap {
					allObjects = false
					break
				}
			}
			if allObjects {
				rows := make([]map[string]any, 0, len(obj))
				for _, k := range sortedKeys(obj) {
					row := obj[k].(map[string]any)
					if _, has := row["id"]; !has {
						row["id"] = k
					}
					rows = append(rows, row)
				}
				return rows, true
			}
		}
		return nil, false
	}

	rows := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if row, isMap := el.(map[string]any); isMap {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, false
	}
	return rows, true
}
