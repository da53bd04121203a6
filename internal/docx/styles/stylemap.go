package styles

// StyleMap - плоская карта CSS-подобных атрибутов стиля.
// Значения финальные: имена шрифтов нормализованы, размеры в полупунктах
// и твипах уже переведены в pt/px-строки.
type StyleMap map[string]string

// SetIfAbsent записывает значение только если атрибут ещё не установлен.
// Семантика "первый пишущий побеждает" лежит в основе порядка проходов
// экстрактора.
func (m StyleMap) SetIfAbsent(key, value string) {
	if value == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

// MergeAbsent переносит из other все атрибуты, отсутствующие в m.
func (m StyleMap) MergeAbsent(other StyleMap) {
	for k, v := range other {
		m.SetIfAbsent(k, v)
	}
}

// Clone возвращает независимую копию карты.
func (m StyleMap) Clone() StyleMap {
	res := make(StyleMap, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}
