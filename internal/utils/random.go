package utils

import (
	"fmt"
	"math/rand"

	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmailLocalPartFromChineseName 把中文姓名转成拼音再加上随机数字，作为邮箱的本地部分
func GenerateEmailLocalPartFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		localPart += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart
}

func GenerateRandomUser(role domain.Role, password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        GenerateEmailLocalPartFromChineseName(fullName) + "@" + emailDomainName,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Role:         role,
	}

	return user, nil
}

var specialties = []string{
	"内科", "外科", "儿科", "妇产科", "眼科", "口腔科", "皮肤科", "耳鼻喉科", "骨科", "心理科",
}

var locations = []string{
	"门诊楼一层 101 诊室", "门诊楼二层 203 诊室", "门诊楼三层 305 诊室",
	"东院区门诊部", "西院区门诊部", "国际医疗部 502 诊室",
}

var appointmentDurations = []int32{15, 20, 30, 45, 60}

// GenerateRandomPractitioner 生成一个随机的医生执业档案（不含用户信息）
func GenerateRandomPractitioner() *domain.Practitioner {
	specialty := specialties[rand.Intn(len(specialties))]
	return &domain.Practitioner{
		Specialty:           specialty,
		Location:            locations[rand.Intn(len(locations))],
		Bio:                 fmt.Sprintf("从事%s临床工作 %d 年", specialty, rand.Intn(25)+3),
		AppointmentDuration: appointmentDurations[rand.Intn(len(appointmentDurations))],
	}
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
