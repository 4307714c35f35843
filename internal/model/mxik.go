package model

// ==================== MXIK 税收分类编码 ====================

// 兜底编码：其他零售商品
const DefaultMxikCode = "47190000"

// MxikCode 乌兹别克斯坦国家税收商品分类编码（8 位数字）
// 从 JSON 参考表加载，加载失败时使用内置兜底表
type MxikCode struct {
	Code       string `json:"code"`
	NameUz     string `json:"name_uz"`
	NameRu     string `json:"name_ru"`
	ParentCode string `json:"parent_code,omitempty"`
	Level      int    `json:"level"`
	IsActive   bool   `json:"is_active"`
}

// MxikMatch 模糊匹配结果
type MxikMatch struct {
	Code       string `json:"code"`
	NameUz     string `json:"name_uz"`
	NameRu     string `json:"name_ru"`
	Similarity int    `json:"similarity"` // 0..100
}

// BuiltinMxikCodes 内置兜底表
// 参考表文件缺失或损坏时保证服务可用
func BuiltinMxikCodes() []MxikCode {
	return []MxikCode{
		{Code: "26201100", NameUz: "Smartfonlar va mobil telefonlar", NameRu: "Смартфоны и мобильные телефоны", Level: 2, IsActive: true},
		{Code: "26201200", NameUz: "Noutbuklar va planshetlar", NameRu: "Ноутбуки и планшеты", Level: 2, IsActive: true},
		{Code: "26401100", NameUz: "Televizorlar", NameRu: "Телевизоры", Level: 2, IsActive: true},
		{Code: "26402100", NameUz: "Quloqchinlar va audio texnika", NameRu: "Наушники и аудиотехника", Level: 2, IsActive: true},
		{Code: "27511100", NameUz: "Muzlatgichlar", NameRu: "Холодильники", Level: 2, IsActive: true},
		{Code: "27511200", NameUz: "Kir yuvish mashinalari", NameRu: "Стиральные машины", Level: 2, IsActive: true},
		{Code: "27512100", NameUz: "Changyutgichlar", NameRu: "Пылесосы", Level: 2, IsActive: true},
		{Code: "27521100", NameUz: "Oshxona plitalari va pechlar", NameRu: "Кухонные плиты и печи", Level: 2, IsActive: true},
		{Code: "14131100", NameUz: "Erkaklar kiyimi", NameRu: "Одежда мужская", Level: 2, IsActive: true},
		{Code: "14131200", NameUz: "Ayollar kiyimi", NameRu: "Одежда женская", Level: 2, IsActive: true},
		{Code: "14131300", NameUz: "Bolalar kiyimi", NameRu: "Одежда детская", Level: 2, IsActive: true},
		{Code: "15201100", NameUz: "Poyabzal", NameRu: "Обувь", Level: 2, IsActive: true},
		{Code: "20421100", NameUz: "Parfyumeriya mahsulotlari", NameRu: "Парфюмерия", Level: 2, IsActive: true},
		{Code: "20421200", NameUz: "Kosmetika vositalari", NameRu: "Косметические средства", Level: 2, IsActive: true},
		{Code: "32401100", NameUz: "O'yinchoqlar", NameRu: "Игрушки детские", Level: 2, IsActive: true},
		{Code: "58111100", NameUz: "Kitoblar", NameRu: "Книги", Level: 2, IsActive: true},
		{Code: "31091100", NameUz: "Mebel", NameRu: "Мебель", Level: 2, IsActive: true},
		{Code: "23411100", NameUz: "Idish-tovoq", NameRu: "Посуда", Level: 2, IsActive: true},
		{Code: "10821100", NameUz: "Shokolad va shirinliklar", NameRu: "Шоколад и кондитерские изделия", Level: 2, IsActive: true},
		{Code: "10831100", NameUz: "Choy va kofe", NameRu: "Чай и кофе", Level: 2, IsActive: true},
		{Code: "32301100", NameUz: "Sport tovarlari", NameRu: "Спортивные товары", Level: 2, IsActive: true},
		{Code: "29321100", NameUz: "Avtomobil ehtiyot qismlari", NameRu: "Автомобильные запчасти", Level: 2, IsActive: true},
		{Code: "13921100", NameUz: "To'qimachilik mahsulotlari", NameRu: "Текстильные изделия", Level: 2, IsActive: true},
		{Code: "15121100", NameUz: "Sumkalar va charm buyumlar", NameRu: "Сумки и кожгалантерея", Level: 2, IsActive: true},
		{Code: DefaultMxikCode, NameUz: "Boshqa chakana tovarlar", NameRu: "Прочие розничные товары", Level: 1, IsActive: true},
	}
}
