// Package storage 封装 gdata 存档，所有持久化数据都以 YAML 保存
//
// 约定：*gdata.Manager 为 nil 表示内存模式，读取时视为没有数据，写入时直接成功。
package storage

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Open 打开应用的 gdata 存储
//
// 参数:
//   - appName: 存储目录名
//
// 返回:
//   - *gdata.Manager: 存储管理器，失败时为 nil
//   - error: 平台目录无法准备或 gdata 无法打开
func Open(appName string) (*gdata.Manager, error) {
	if err := prepareDir(); err != nil {
		// gdata 可能仍然可用，只记录
		log.Printf("[Storage] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", appName, err)
	}
	return m, nil
}

// LoadYAML 读取 object/prop 并解析到 out
//
// 返回:
//   - bool: 数据是否存在
//   - error: 数据存在但读取或解析失败
func LoadYAML(m *gdata.Manager, object, prop string, out any) (bool, error) {
	if m == nil || !m.ObjectPropExists(object, prop) {
		return false, nil
	}
	data, err := m.LoadObjectProp(object, prop)
	if err != nil {
		return false, fmt.Errorf("load %s/%s: %w", object, prop, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal %s/%s: %w", object, prop, err)
	}
	return true, nil
}

// SaveYAML 把 v 序列化为 YAML 写入 object/prop
func SaveYAML(m *gdata.Manager, object, prop string, v any) error {
	if m == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", object, prop, err)
	}
	if err := m.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("save %s/%s: %w", object, prop, err)
	}
	return nil
}
