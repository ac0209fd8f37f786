package etsource

// Deduplicate 按数据源结构描述去除重复记录
//
// 从 KeyFields 中选出第一个在记录集中实际有值的候选列作为去重键，
// 同一键值只保留首次出现的记录；空白占位键值的记录彼此独立，全部保留。
// 没有任何候选列有值时整体跳过去重。对已去重的集合再次调用返回相同结果。
func Deduplicate(records []Record, schema Schema) []Record {
	if len(records) == 0 || len(schema.KeyFields) == 0 {
		return records
	}

	keyField := pickKeyField(records, schema.KeyFields)
	if keyField == "" {
		return records
	}

	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		raw, _ := rec.Field(keyField)
		if IsBlankKey(raw) {
			out = append(out, rec)
			continue
		}
		key := NormalizeTracking(raw)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

// pickKeyField 选出第一个有非空白值的候选列
func pickKeyField(records []Record, candidates []string) string {
	for _, field := range candidates {
		for _, rec := range records {
			v, ok := rec.Field(field)
			if ok && !IsBlankKey(v) {
				return field
			}
		}
	}
	return ""
}
