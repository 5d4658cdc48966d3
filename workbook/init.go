// workbook/init.go
package workbook

// init 함수는 패키지가 로드될 때 기본 포맷들을 등록합니다.
func init() {
	// Excel 2007+ (ZIP + XML)
	Register(ExtXLSX, OpenXLSX)

	// Excel 97-2003 (BIFF8)
	Register(ExtXLS, OpenXLS)
}

// 지원하는 확장자
const (
	ExtXLSX = ".xlsx"
	ExtXLS  = ".xls"
)
