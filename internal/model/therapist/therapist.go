package therapist

// Therapist captures one directory entry the matching stub can recommend.
type Therapist struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Specialties     []string `json:"specialties"`
	Languages       []string `json:"languages"`
	PricePerSession float64  `json:"pricePerSession"`
	Currency        string   `json:"currency"`
	Keywords        []string `json:"keywords,omitempty"` // 用于本地匹配的触发词
	Bio             string   `json:"bio,omitempty"`
}

// Seed provides the dev server's default therapist directory.
func Seed() []Therapist {
	return []Therapist{
		{
			ID:              "t-lin-wan",
			Name:            "林晚",
			Title:           "注册心理咨询师",
			Specialties:     []string{"焦虑", "睡眠问题", "职场压力"},
			Languages:       []string{"zh-CN", "en-US"},
			PricePerSession: 400,
			Currency:        "CNY",
			Keywords:        []string{"焦虑", "紧张", "睡不好", "失眠", "加班", "压力", "anxious", "stress", "sleep"},
			Bio:             "擅长认知行为疗法，帮助来访者缓解焦虑与睡眠困扰。",
		},
		{
			ID:              "t-chen-yu",
			Name:            "陈屿",
			Title:           "婚姻家庭治疗师",
			Specialties:     []string{"亲密关系", "家庭矛盾", "沟通"},
			Languages:       []string{"zh-CN"},
			PricePerSession: 500,
			Currency:        "CNY",
			Keywords:        []string{"吵架", "伴侣", "婚姻", "家人", "父母", "孩子", "分手", "离婚", "relationship"},
			Bio:             "以系统式家庭治疗见长，关注关系中的互动模式。",
		},
		{
			ID:              "t-su-qing",
			Name:            "苏青",
			Title:           "临床心理学博士",
			Specialties:     []string{"情绪低落", "哀伤辅导", "自我认同"},
			Languages:       []string{"zh-CN", "en-US"},
			PricePerSession: 600,
			Currency:        "CNY",
			Keywords:        []string{"难过", "低落", "哭", "失去", "孤独", "没意思", "提不起劲", "sad", "lonely", "grief"},
			Bio:             "陪伴经历丧失与低潮期的来访者，重新找回生活的节奏。",
		},
		{
			ID:              "t-han-bo",
			Name:            "韩博",
			Title:           "青少年心理咨询师",
			Specialties:     []string{"学业压力", "青少年情绪", "亲子沟通"},
			Languages:       []string{"zh-CN"},
			PricePerSession: 350,
			Currency:        "CNY",
			Keywords:        []string{"考试", "学习", "学校", "同学", "老师", "作业", "升学", "exam", "school"},
			Bio:             "长期在校园心理辅导一线，熟悉青少年的表达方式。",
		},
	}
}
