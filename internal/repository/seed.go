package repository

import (
	"time"

	"github.com/umalmyha/crm/internal/model"
)

// Seed is initial content of the store
type Seed struct {
	Customers      []model.Customer
	Products       []model.Product
	ServiceRecords []model.ServiceRecord
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func datePtr(d model.Date) *model.Date {
	return &d
}

func product(id, sn, name, customerID string, purchased, warrantyEnd model.Date, wt model.WarrantyType, status string) model.Product {
	return model.Product{
		ProductID:       id,
		SerialNumber:    sn,
		ProductName:     name,
		CustomerID:      customerID,
		PurchaseDate:    purchased,
		WarrantyEndDate: warrantyEnd,
		WarrantyType:    wt,
		Status:          status,
	}
}

// DefaultSeed returns sample dataset loaded at startup
//
//nolint:funlen // plain data
func DefaultSeed() Seed {
	return Seed{
		Customers: []model.Customer{
			{
				CustomerID:               "CUST001",
				Name:                     "张明",
				Email:                    "zhang.ming@example.com",
				Phone:                    "+86-138-0011-2233",
				Address:                  "北京市朝阳区建国门外大街1号",
				RegistrationDate:         model.NewDate(2022, time.March, 15),
				DateOfBirth:              datePtr(model.NewDate(1985, time.August, 20)),
				Notes:                    strPtr("优质客户，经常购买高端产品"),
				TotalPurchases:           3,
				LifetimeValue:            28500.00,
				SupportCasesCount:        2,
				CommunicationPreferences: []string{"email", "sms"},
			},
			{
				CustomerID:               "CUST002",
				Name:                     "李华",
				Email:                    "li.hua@example.com",
				Phone:                    "+86-139-0022-3344",
				Address:                  "上海市浦东新区陆家嘴金融中心",
				RegistrationDate:         model.NewDate(2023, time.January, 10),
				DateOfBirth:              datePtr(model.NewDate(1990, time.May, 15)),
				Notes:                    strPtr("企业客户，批量采购"),
				TotalPurchases:           5,
				LifetimeValue:            42000.00,
				SupportCasesCount:        1,
				CommunicationPreferences: []string{"email", "wechat"},
			},
			{
				CustomerID:               "CUST003",
				Name:                     "王芳",
				Email:                    "wang.fang@example.com",
				Phone:                    "+86-137-0033-4455",
				Address:                  "广州市天河区珠江新城",
				RegistrationDate:         model.NewDate(2022, time.November, 5),
				DateOfBirth:              datePtr(model.NewDate(1988, time.December, 3)),
				Notes:                    strPtr("个人用户，偏好智能家居产品"),
				TotalPurchases:           2,
				LifetimeValue:            12800.00,
				SupportCasesCount:        0,
				CommunicationPreferences: []string{"sms", "phone"},
			},
			{
				CustomerID:               "CUST004",
				Name:                     "陈强",
				Email:                    "chen.qiang@example.com",
				Phone:                    "+86-136-0044-5566",
				Address:                  "深圳市南山区科技园",
				RegistrationDate:         model.NewDate(2023, time.June, 20),
				DateOfBirth:              datePtr(model.NewDate(1992, time.July, 18)),
				Notes:                    strPtr("科技爱好者，喜欢最新产品"),
				TotalPurchases:           4,
				LifetimeValue:            35600.00,
				SupportCasesCount:        3,
				CommunicationPreferences: []string{"email", "app"},
			},
			{
				CustomerID:               "CUST005",
				Name:                     "刘婷",
				Email:                    "liu.ting@example.com",
				Phone:                    "+86-135-0055-6677",
				Address:                  "杭州市西湖区文三路",
				RegistrationDate:         model.NewDate(2022, time.August, 12),
				DateOfBirth:              datePtr(model.NewDate(1987, time.March, 25)),
				Notes:                    strPtr("电商客户，经常在线购物"),
				TotalPurchases:           3,
				LifetimeValue:            19200.00,
				SupportCasesCount:        1,
				CommunicationPreferences: []string{"email", "sms", "wechat"},
			},
		},
		Products: []model.Product{
			product("PROD001", "SN20240001", "智能电视 65寸", "CUST001", model.NewDate(2023, time.December, 10), model.NewDate(2025, time.December, 10), model.WarrantyStandard, "active"),
			product("PROD002", "SN20240002", "智能音箱 Pro", "CUST001", model.NewDate(2023, time.August, 15), model.NewDate(2024, time.August, 15), model.WarrantyExtended, "active"),
			product("PROD003", "SN20240003", "笔记本电脑 X1", "CUST002", model.NewDate(2024, time.January, 20), model.NewDate(2025, time.January, 20), model.WarrantyPremium, "active"),
			product("PROD004", "SN20240004", "平板电脑 T8", "CUST002", model.NewDate(2023, time.November, 5), model.NewDate(2024, time.November, 5), model.WarrantyStandard, "active"),
			product("PROD005", "SN20240005", "智能手表 S3", "CUST003", model.NewDate(2023, time.September, 18), model.NewDate(2024, time.September, 18), model.WarrantyStandard, "active"),
			product("PROD006", "SN20240006", "无线耳机 E2", "CUST003", model.NewDate(2023, time.June, 22), model.NewDate(2024, time.June, 22), model.WarrantyStandard, "expired"),
			product("PROD007", "SN20240007", "游戏主机 G5", "CUST004", model.NewDate(2024, time.February, 14), model.NewDate(2025, time.February, 14), model.WarrantyExtended, "active"),
			product("PROD008", "SN20240008", "VR头盔 V2", "CUST004", model.NewDate(2023, time.October, 30), model.NewDate(2024, time.October, 30), model.WarrantyStandard, "active"),
			product("PROD009", "SN20240009", "数码相机 C9", "CUST005", model.NewDate(2023, time.July, 8), model.NewDate(2024, time.July, 8), model.WarrantyStandard, "active"),
			product("PROD010", "SN20240010", "打印机 P3", "CUST005", model.NewDate(2023, time.April, 12), model.NewDate(2024, time.April, 12), model.WarrantyExtended, "active"),
		},
		ServiceRecords: []model.ServiceRecord{
			{
				RecordID:          "SRV001",
				SerialNumber:      "SN20240001",
				CustomerID:        "CUST001",
				ServiceDate:       time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
				ServiceType:       "屏幕维修",
				Description:       "屏幕出现竖线",
				Technician:        "王师傅",
				Status:            model.ServiceCompleted,
				EstimatedDuration: 120,
				ActualDuration:    intPtr(110),
				Notes:             strPtr("更换屏幕面板，测试正常"),
			},
			{
				RecordID:          "SRV002",
				SerialNumber:      "SN20240003",
				CustomerID:        "CUST002",
				ServiceDate:       time.Date(2024, time.March, 20, 14, 30, 0, 0, time.UTC),
				ServiceType:       "系统升级",
				Description:       "操作系统升级服务",
				Technician:        "李工程师",
				Status:            model.ServiceScheduled,
				EstimatedDuration: 60,
			},
		},
	}
}
