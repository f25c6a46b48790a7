// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

// reportXML is a trimmed Analytics report response as returned by Alma.
const reportXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<report>
  <QueryResult>
    <ResumptionToken>0F5A2B</ResumptionToken>
    <IsFinished>true</IsFinished>
    <ResultXml>
      <rowset xmlns="urn:schemas-microsoft-com:xml-analysis:rowset">
        <xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:saw-sql="urn:saw-sql" targetNamespace="urn:schemas-microsoft-com:xml-analysis:rowset">
          <xsd:complexType name="Row">
            <xsd:sequence>
              <xsd:element minOccurs="0" maxOccurs="1" name="Column0" type="xsd:string" saw-sql:type="varchar" saw-sql:columnHeading="Title"/>
              <xsd:element minOccurs="0" maxOccurs="1" name="Column1" type="xsd:int" saw-sql:type="integer" saw-sql:columnHeading="Loans"/>
            </xsd:sequence>
          </xsd:complexType>
        </xsd:schema>
        <Row>
          <Column0>Moby Dick</Column0>
          <Column1>12</Column1>
        </Row>
        <Row>
          <Column0>Walden &amp; Civil Disobedience</Column0>
          <Column1>3</Column1>
        </Row>
      </rowset>
    </ResultXml>
  </QueryResult>
</report>`

// webServiceErrorXML is Alma's generic web service error body.
const webServiceErrorXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<web_service_result xmlns="http://com/exlibris/urm/general/xmlbeans">
  <errorsExist>true</errorsExist>
  <errorList>
    <error>
      <errorCode>INTERNAL_SERVER_ERROR</errorCode>
      <errorMessage>Bad request: path is not a valid report</errorMessage>
      <trackingId>E01-1810142312-XYZ</trackingId>
    </error>
  </errorList>
</web_service_result>`
