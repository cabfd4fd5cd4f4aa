package utils

import "os"

// EmulateMobileEnv 设为 "1" 时桌面端也按触屏设备显示提示
const EmulateMobileEnv = "KOTOBA_MOBILE_EMULATE"

// IsMobile 返回是否按触屏设备显示
// 移动端构建（-tags mobile）始终为 true
func IsMobile() bool {
	return mobileBuild || os.Getenv(EmulateMobileEnv) == "1"
}
