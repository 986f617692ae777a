package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const cbrServiceURL = "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"

var ratesClient = &http.Client{Timeout: 10 * time.Second}

// GetCentralBankRate запрашивает текущую ключевую ставку ЦБ РФ
// через SOAP-сервис DailyInfo. Возвращает ставку в процентах годовых.
func GetCentralBankRate() (float64, error) {
	// Формируем SOAP-запрос KeyRate за последние сутки
	to := time.Now()
	from := to.AddDate(0, 0, -1)

	envelope := etree.NewDocument()
	envelope.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := envelope.CreateElement("soap:Envelope")
	root.CreateAttr("xmlns:soap", "http://schemas.xmlsoap.org/soap/envelope/")
	root.CreateAttr("xmlns:web", "http://web.cbr.ru/")
	body := root.CreateElement("soap:Body")
	keyRate := body.CreateElement("web:KeyRate")
	keyRate.CreateElement("web:fromDate").SetText(from.Format("2006-01-02"))
	keyRate.CreateElement("web:ToDate").SetText(to.Format("2006-01-02"))

	requestBody, err := envelope.WriteToString()
	if err != nil {
		return 0, fmt.Errorf("ошибка формирования SOAP-запроса: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, cbrServiceURL, strings.NewReader(requestBody))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := ratesClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка запроса к сервису ЦБ: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("сервис ЦБ вернул статус %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	// Разбираем ответ и берем последнее значение ставки
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(responseBody); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа сервиса ЦБ: %v", err)
	}

	rates := doc.FindElements("//KR/Rate")
	if len(rates) == 0 {
		return 0, errors.New("в ответе сервиса ЦБ нет данных о ставке")
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rates[len(rates)-1].Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное значение ставки: %v", err)
	}

	return rate, nil
}
